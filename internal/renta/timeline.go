package renta

import (
	"github.com/mercadorenta/rentas-client/internal/model"
)

// Milestone keys of the sparse timeline map. The same keys double as the
// legacy direct-field names, which is what makes the fallback mechanical.
const (
	FechaPago                   = "fecha_pago"
	FechaCoordinacionConfirmada = "fecha_coordinacion_confirmada"
	FechaEntregaConfirmada      = "fecha_entrega_confirmada"
	FechaEntrega                = "fecha_entrega"
	FechaEnUso                  = "fecha_en_uso"
	FechaDevolucion             = "fecha_devolucion"
	FechaFinalizacion           = "fecha_finalizacion"
	FechaLiberacionDeposito     = "fecha_liberacion_deposito"
	FechaIncidente              = "fecha_incidente"
	FechaCancelacion            = "fecha_cancelacion"
	FechaExpiracion             = "fecha_expiracion"
)

// Cronologia is the projection input, built identically from a full Renta
// and from an inbox row so both views resolve dates the same way.
type Cronologia struct {
	Estado                 Estado
	Timeline               map[string]*string
	directas               map[string]*string
	CoordinacionConfirmada bool
	DepositoLiberado       bool
	ReembolsoSimulado      bool
	Deposito               float64
}

// Fecha resolves a milestone date: the timeline map is authoritative when it
// carries a value, the direct field is the fallback, nil otherwise.
func (c *Cronologia) Fecha(key string) *string {
	if v, ok := c.Timeline[key]; ok && v != nil {
		return v
	}
	return c.directas[key]
}

func (c *Cronologia) primera(keys ...string) *string {
	for _, k := range keys {
		if v := c.Fecha(k); v != nil {
			return v
		}
	}
	return nil
}

func DeRenta(r *model.Renta) Cronologia {
	return Cronologia{
		Estado:   ParseEstado(r.EstadoRenta),
		Timeline: r.Timeline,
		directas: map[string]*string{
			FechaPago:                   r.FechaPago,
			FechaCoordinacionConfirmada: r.FechaCoordinacionConfirmada,
			FechaEntregaConfirmada:      r.FechaEntregaConfirmada,
			FechaEntrega:                r.FechaEntrega,
			FechaEnUso:                  r.FechaEnUso,
			FechaDevolucion:             r.FechaDevolucion,
			FechaFinalizacion:           r.FechaFinalizacion,
			FechaLiberacionDeposito:     r.FechaLiberacionDeposito,
			FechaIncidente:              r.FechaIncidente,
			FechaCancelacion:            r.FechaCancelacion,
			FechaExpiracion:             r.FechaExpiracion,
		},
		CoordinacionConfirmada: r.CoordinacionConfirmada,
		DepositoLiberado:       r.DepositoLiberado,
		ReembolsoSimulado:      r.ReembolsoSimulado,
		Deposito:               r.Deposito(),
	}
}

func DeInboxItem(it *model.InboxItem) Cronologia {
	return Cronologia{
		Estado:   ParseEstado(it.Estado),
		Timeline: it.Timeline,
		directas: map[string]*string{
			FechaPago:                   it.FechaPago,
			FechaCoordinacionConfirmada: it.FechaCoordinacionConfirmada,
			FechaEntregaConfirmada:      it.FechaEntregaConfirmada,
			FechaEntrega:                it.FechaEntrega,
			FechaEnUso:                  it.FechaEnUso,
			FechaDevolucion:             it.FechaDevolucion,
			FechaFinalizacion:           it.FechaFinalizacion,
			FechaLiberacionDeposito:     it.FechaLiberacionDeposito,
			FechaIncidente:              it.FechaIncidente,
			FechaCancelacion:            it.FechaCancelacion,
			FechaExpiracion:             it.FechaExpiracion,
		},
		DepositoLiberado:  it.DepositoLiberado,
		ReembolsoSimulado: it.ReembolsoSimulado,
		Deposito:          it.DepositoGarantia(),
	}
}

// Paso is one compact-view step.
type Paso struct {
	Key   string
	Label string
	Fecha *string
	Done  bool
}

// EstadoPaso is the detailed-view step status.
type EstadoPaso string

const (
	PasoDone    EstadoPaso = "done"
	PasoPending EstadoPaso = "pending"
	PasoAlert   EstadoPaso = "alert"
)

type PasoHistorial struct {
	Key    string
	Label  string
	Fecha  *string
	Status EstadoPaso
}

// MiniTimeline projects the compact five-step view. Reaching any escape
// state marks every prior step done regardless of missing dates (the server
// guarantees monotonic progression); steps that are neither done nor dated
// are dropped to keep the strip short.
func MiniTimeline(c Cronologia) []Paso {
	esCancel := c.Estado == EstadoCancelada || c.Estado == EstadoExpirada
	esIncidente := c.Estado == EstadoIncidente
	esFinal := c.Estado == EstadoFinalizada
	retro := esFinal || esCancel || esIncidente

	actual := c.Estado.Rango()
	done := func(e Estado) bool { return actual >= e.Rango() || retro }

	ultimoKey, ultimoLabel, ultimaFecha := "finalizada", "Finalizada", c.Fecha(FechaFinalizacion)
	switch {
	case esIncidente:
		ultimoKey, ultimoLabel, ultimaFecha = "incidente", "Incidente", c.Fecha(FechaIncidente)
	case c.Estado == EstadoExpirada:
		ultimoKey, ultimoLabel, ultimaFecha = "expirada", "Expirada", c.Fecha(FechaExpiracion)
	case c.Estado == EstadoCancelada:
		ultimoKey, ultimoLabel, ultimaFecha = "cancelada", "Cancelada", c.Fecha(FechaCancelacion)
	}

	pasos := []Paso{
		{Key: "pagada", Label: "Pagada", Fecha: c.Fecha(FechaPago), Done: done(EstadoPagada)},
		{Key: "confirmada", Label: "Entrega", Fecha: c.primera(FechaEntregaConfirmada, FechaEntrega), Done: done(EstadoConfirmada)},
		{Key: "en_uso", Label: "En uso", Fecha: c.Fecha(FechaEnUso), Done: done(EstadoEnUso)},
		{Key: "devuelta", Label: "Devuelta", Fecha: c.Fecha(FechaDevolucion), Done: done(EstadoDevuelta)},
		{Key: ultimoKey, Label: ultimoLabel, Fecha: ultimaFecha, Done: retro},
	}

	esenciales := make([]Paso, 0, len(pasos))
	for _, p := range pasos {
		if p.Done || p.Fecha != nil || p.Key == ultimoKey {
			esenciales = append(esenciales, p)
		}
	}
	if len(esenciales) > 5 {
		esenciales = esenciales[:5]
	}
	return esenciales
}

// HistorialTimeline projects the detailed history. While the story is still
// open every step shows (done or pending); once an escape state is reached,
// dateless pending steps are filtered out so nothing reads as "still to
// come" when it never will.
func HistorialTimeline(c Cronologia) []PasoHistorial {
	esCancel := c.Estado == EstadoCancelada || c.Estado == EstadoExpirada
	esIncidente := c.Estado == EstadoIncidente
	esFinal := c.Estado == EstadoFinalizada

	escape := esFinal || esCancel || esIncidente

	// Only a recorded date proves a step, open or closed; in closed
	// stories the dateless leftovers are filtered below.
	paso := func(key, label string, fecha *string) PasoHistorial {
		return PasoHistorial{Key: key, Label: label, Fecha: fecha, Status: estadoPorFecha(fecha)}
	}

	fechaEntrega := c.primera(FechaEntregaConfirmada, FechaEntrega)
	fechaFin := c.primera(FechaFinalizacion, FechaLiberacionDeposito)
	fechaInc := c.Fecha(FechaIncidente)

	fechaCoord := c.Fecha(FechaCoordinacionConfirmada)
	coord := paso("coordinacion", "Coordinación confirmada", fechaCoord)
	if c.CoordinacionConfirmada {
		coord.Status = PasoDone
	}

	out := []PasoHistorial{
		paso("pagada", "Pagada", c.Fecha(FechaPago)),
		coord,
		paso("entrega", "Entrega confirmada", fechaEntrega),
		paso("en_uso", "En uso", c.Fecha(FechaEnUso)),
		paso("devuelta", "Devuelta", c.Fecha(FechaDevolucion)),
	}

	if esFinal {
		out = append(out, PasoHistorial{Key: "finalizada", Label: "Finalizada", Fecha: fechaFin, Status: estadoPorFecha(fechaFin)})
		if c.DepositoLiberado {
			out = append(out, PasoHistorial{Key: "deposito_liberado", Label: "Depósito liberado", Fecha: fechaFin, Status: PasoDone})
		}
	}

	if esIncidente || fechaInc != nil {
		out = append(out, PasoHistorial{Key: "incidente", Label: "Incidente", Fecha: fechaInc, Status: PasoAlert})
		// Display-only inference: with an open incident the deposit sits
		// retained until someone resolves; the server exposes no milestone
		// for it, so the step stays dateless and never drives a transition.
		if !esFinal && c.Deposito > 0 {
			out = append(out, PasoHistorial{Key: "deposito_retenido", Label: "Depósito retenido", Fecha: nil, Status: PasoPending})
		}
	}

	if esCancel {
		key, label, fecha := "cancelada", "Cancelada", c.Fecha(FechaCancelacion)
		if c.Estado == EstadoExpirada {
			key, label, fecha = "expirada", "Expirada", c.Fecha(FechaExpiracion)
		}
		out = append(out, PasoHistorial{Key: key, Label: label, Fecha: fecha, Status: PasoDone})
		if c.ReembolsoSimulado {
			out = append(out, PasoHistorial{Key: "reembolso", Label: "Reembolso simulado", Fecha: nil, Status: PasoDone})
		}
	}

	if !escape {
		return out
	}
	filtrado := make([]PasoHistorial, 0, len(out))
	for _, p := range out {
		if p.Status == PasoPending && p.Fecha == nil && p.Key != "deposito_retenido" {
			continue
		}
		filtrado = append(filtrado, p)
	}
	return filtrado
}

func estadoPorFecha(f *string) EstadoPaso {
	if f != nil {
		return PasoDone
	}
	return PasoPending
}
