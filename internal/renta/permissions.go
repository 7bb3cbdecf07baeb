package renta

import (
	"github.com/mercadorenta/rentas-client/internal/model"
)

// Viewer is everything permission evaluation may know about who is looking.
type Viewer struct {
	UserID int64
	Admin  bool
}

func (v Viewer) EsDueno(r *model.Renta) bool {
	return v.UserID != 0 && r != nil && r.IDPropietario == v.UserID
}

func (v Viewer) EsArrendatario(r *model.Renta) bool {
	return v.UserID != 0 && r != nil && r.IDArrendatario == v.UserID
}

// Rol resolves the viewer's role on this rental. Admin wins only when the
// viewer is not a party; a party who also holds the admin role acts as the
// party.
func (v Viewer) Rol(r *model.Renta) Rol {
	switch {
	case v.EsArrendatario(r):
		return RolArrendatario
	case v.EsDueno(r):
		return RolDueno
	case v.Admin:
		return RolAdmin
	default:
		return RolNinguno
	}
}

// Permisos is the full action matrix for one (rental, viewer, busy) triple.
// It is plain data: recomputing from unchanged inputs always yields the
// same booleans.
type Permisos struct {
	PagarAhora             bool
	ConfirmarEntrega       bool
	MarcarEnUso            bool
	Devolver               bool
	Finalizar              bool
	ReportarIncidente      bool
	ResolverIncidente      bool
	Cancelar               bool
	GuardarCoordinacion    bool
	ConfirmarCoordinacion  bool
	AceptarCoordinacion    bool
	ConfirmarEntregaOTP    bool
	ConfirmarDevolucionOTP bool
	ChatVisible            bool
	EnviarChat             bool
	DescargarRecibo        bool
	Calificar              bool
	UIBloqueada            bool
}

// Evaluar computes the permission matrix. procesando is the in-flight guard
// flag: while an action is pending everything state-changing reads false.
func Evaluar(r *model.Renta, v Viewer, procesando bool) Permisos {
	var p Permisos
	if r == nil {
		return p
	}

	e := ParseEstado(r.EstadoRenta)
	dueno := v.EsDueno(r)
	arrendatario := v.EsArrendatario(r)
	cancelada := e == EstadoCancelada
	expirada := e == EstadoExpirada

	p.UIBloqueada = procesando || cancelada || expirada || e == EstadoFinalizada
	bloqueada := p.UIBloqueada

	p.PagarAhora = arrendatario && e == EstadoPendientePago && !expirada && !cancelada && !procesando
	p.ConfirmarEntrega = dueno && e == EstadoPagada && !bloqueada
	p.MarcarEnUso = arrendatario && e == EstadoConfirmada && !bloqueada
	p.Devolver = arrendatario && e == EstadoEnUso && !bloqueada
	p.Finalizar = dueno && e == EstadoDevuelta && !bloqueada
	p.ReportarIncidente = dueno && e == EstadoDevuelta && !expirada && !cancelada && !procesando
	p.ResolverIncidente = e == EstadoIncidente && (dueno || v.Admin) && !procesando

	switch {
	case arrendatario:
		p.Cancelar = e == EstadoPendientePago || e == EstadoPagada || e == EstadoConfirmada
	case dueno:
		p.Cancelar = e == EstadoPagada || e == EstadoConfirmada
	case v.Admin:
		p.Cancelar = e == EstadoPendientePago || e == EstadoPagada || e == EstadoConfirmada
	}
	p.Cancelar = p.Cancelar && !procesando

	p.GuardarCoordinacion = dueno && !bloqueada
	p.ConfirmarCoordinacion = dueno && !bloqueada &&
		r.VentanaEntregaElegida != nil && *r.VentanaEntregaElegida != "" &&
		r.VentanaDevolucionElegida != nil && *r.VentanaDevolucionElegida != "" &&
		!r.CoordinacionConfirmada
	p.AceptarCoordinacion = arrendatario && !bloqueada

	p.ConfirmarEntregaOTP = dueno && (e == EstadoPagada || e == EstadoConfirmada) && !bloqueada
	p.ConfirmarDevolucionOTP = dueno && e == EstadoEnUso && !bloqueada

	p.ChatVisible = r.ChatHabilitado && !cancelada && !expirada && e != EstadoFinalizada
	p.EnviarChat = r.ChatHabilitado && !bloqueada

	switch e {
	case EstadoPagada, EstadoConfirmada, EstadoEnUso, EstadoDevuelta, EstadoFinalizada, EstadoIncidente:
		p.DescargarRecibo = true
	}

	p.Calificar = e == EstadoFinalizada && (arrendatario || dueno)

	return p
}
