package renta

import (
	"strings"
	"unicode/utf8"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/model"
)

// Local pre-flight rules. They duplicate server-side enforcement on purpose:
// a rejected payload never leaves the process, but the server stays
// authoritative for everything that does.

// ValidarResolucion checks the deposit-withholding rules: a partial
// withholding must fall strictly between 0 and the deposit, and any
// withholding decision requires a note.
func ValidarResolucion(req model.ResolverIncidenteRequest, deposito float64) error {
	retiene := req.Decision == model.DecisionRetenerParcial || req.Decision == model.DecisionRetenerTotal

	if req.Decision == model.DecisionRetenerParcial {
		if req.MontoRetenido == nil || *req.MontoRetenido <= 0 {
			return errs.Validation("Indica un monto retenido válido (mayor a 0).")
		}
		if deposito > 0 && *req.MontoRetenido >= deposito {
			return errs.Validation("El monto retenido debe ser menor al depósito.")
		}
	}

	if retiene && (req.Nota == nil || strings.TrimSpace(*req.Nota) == "") {
		return errs.Validation("La nota es obligatoria cuando se retiene el depósito.")
	}
	return nil
}

// ValidarCancelacion: the owner must justify a cancellation; renter and
// admin may cancel without a motive.
func ValidarCancelacion(motivo string, rol Rol) error {
	if rol == RolDueno && strings.TrimSpace(motivo) == "" {
		return errs.Validation("El motivo es obligatorio para el dueño.")
	}
	return nil
}

func ValidarIncidente(descripcion string) error {
	if utf8.RuneCountInString(strings.TrimSpace(descripcion)) < 5 {
		return errs.Validation("Describe el incidente (mín. 5 caracteres).")
	}
	return nil
}

// ValidarVentanasElegidas checks presence only; the chosen windows are never
// re-validated against the proposed list (the server owns membership).
func ValidarVentanasElegidas(entrega, devolucion string) error {
	if strings.TrimSpace(entrega) == "" || strings.TrimSpace(devolucion) == "" {
		return errs.Validation("Elige ventana de entrega y devolución.")
	}
	return nil
}

func ValidarMensajeChat(mensaje string) error {
	if strings.TrimSpace(mensaje) == "" {
		return errs.Validation("Escribe un mensaje.")
	}
	return nil
}
