package renta

import "strings"

// Estado is the rental lifecycle state as the server spells it on the wire.
type Estado string

const (
	EstadoPendientePago Estado = "pendiente_pago"
	EstadoPagada        Estado = "pagada"
	EstadoConfirmada    Estado = "confirmada"
	EstadoEnUso         Estado = "en_uso"
	EstadoDevuelta      Estado = "devuelta"
	EstadoFinalizada    Estado = "finalizada"
	EstadoIncidente     Estado = "incidente"
	EstadoCancelada     Estado = "cancelada"
	EstadoExpirada      Estado = "expirada"
)

// ParseEstado normalizes the raw wire value; unknown states keep their
// (lowercased) spelling so callers can still render them.
func ParseEstado(raw string) Estado {
	return Estado(strings.ToLower(strings.TrimSpace(raw)))
}

// rango positions each state on the happy path. The escape states share the
// top of the scale so "everything before me is done" holds for them too.
var rango = map[Estado]int{
	EstadoPendientePago: 0,
	EstadoPagada:        1,
	EstadoConfirmada:    2,
	EstadoEnUso:         3,
	EstadoDevuelta:      4,
	EstadoFinalizada:    5,
	EstadoIncidente:     6,
	EstadoCancelada:     7,
	EstadoExpirada:      7,
}

// Rango returns the progression rank, 0 for unknown states.
func (e Estado) Rango() int {
	return rango[e]
}

// Terminal states can never be exited.
func (e Estado) Terminal() bool {
	return e == EstadoFinalizada || e == EstadoCancelada || e == EstadoExpirada
}

// Escape states interrupt the happy path (terminal plus the open-incident
// quasi-terminal).
func (e Estado) Escape() bool {
	return e.Terminal() || e == EstadoIncidente
}

// Rol is the viewer's relationship to a rental.
type Rol uint8

const (
	RolNinguno Rol = iota
	RolArrendatario
	RolDueno
	RolAdmin
)

// Accion is a client-requestable lifecycle transition. Expiration is
// server-driven and deliberately has no Accion: the client only ever
// observes a rental already expired.
type Accion string

const (
	AccionPagar             Accion = "pagar"
	AccionConfirmarEntrega  Accion = "confirmar_entrega"
	AccionMarcarEnUso       Accion = "marcar_en_uso"
	AccionDevolver          Accion = "devolver"
	AccionFinalizar         Accion = "finalizar"
	AccionReportarIncidente Accion = "reportar_incidente"
	AccionResolverIncidente Accion = "resolver_incidente"
	AccionCancelar          Accion = "cancelar"
)

type transicion struct {
	desde Estado
	quien []Rol
	hasta Estado
}

// tabla is the role-scoped transition table the server enforces; the client
// mirrors it for UX and tolerates disagreement (409 handling).
var tabla = map[Accion][]transicion{
	AccionPagar: {
		{EstadoPendientePago, []Rol{RolArrendatario}, EstadoPagada},
	},
	AccionConfirmarEntrega: {
		{EstadoPagada, []Rol{RolDueno}, EstadoConfirmada},
	},
	AccionMarcarEnUso: {
		{EstadoConfirmada, []Rol{RolArrendatario}, EstadoEnUso},
	},
	AccionDevolver: {
		{EstadoEnUso, []Rol{RolArrendatario}, EstadoDevuelta},
	},
	AccionFinalizar: {
		{EstadoDevuelta, []Rol{RolDueno}, EstadoFinalizada},
	},
	AccionReportarIncidente: {
		{EstadoDevuelta, []Rol{RolDueno}, EstadoIncidente},
	},
	AccionResolverIncidente: {
		{EstadoIncidente, []Rol{RolDueno, RolAdmin}, EstadoFinalizada},
	},
	AccionCancelar: {
		{EstadoPendientePago, []Rol{RolArrendatario, RolAdmin}, EstadoCancelada},
		{EstadoPagada, []Rol{RolArrendatario, RolDueno, RolAdmin}, EstadoCancelada},
		{EstadoConfirmada, []Rol{RolArrendatario, RolDueno, RolAdmin}, EstadoCancelada},
	},
}

// Transicion reports whether rol may perform accion from estado, and the
// state the rental lands in when the server agrees.
func Transicion(estado Estado, accion Accion, rol Rol) (Estado, bool) {
	for _, tr := range tabla[accion] {
		if tr.desde != estado {
			continue
		}
		for _, r := range tr.quien {
			if r == rol {
				return tr.hasta, true
			}
		}
	}
	return "", false
}
