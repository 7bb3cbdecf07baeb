package renta_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/renta"
)

func monto(v float64) *float64 { return &v }

func TestValidarResolucion(t *testing.T) {
	t.Parallel()

	const deposito = 500.0
	nota := "daño en la carcasa"
	vacia := "   "

	tests := []struct {
		name    string
		req     model.ResolverIncidenteRequest
		wantErr bool
	}{
		{"liberar sin nota", model.ResolverIncidenteRequest{Decision: model.DecisionLiberar}, false},
		{"liberar con nota vacia", model.ResolverIncidenteRequest{Decision: model.DecisionLiberar, Nota: &vacia}, false},
		{"total con nota", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerTotal, Nota: &nota}, false},
		{"total sin nota", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerTotal}, true},
		{"total con nota en blanco", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerTotal, Nota: &vacia}, true},
		{"parcial valido", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(100), Nota: &nota}, false},
		{"parcial sin monto", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, Nota: &nota}, true},
		{"parcial monto cero", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(0), Nota: &nota}, true},
		{"parcial monto negativo", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(-10), Nota: &nota}, true},
		{"parcial igual al deposito", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(deposito), Nota: &nota}, true},
		{"parcial mayor al deposito", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(deposito + 1), Nota: &nota}, true},
		{"parcial sin nota", model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(100)}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := renta.ValidarResolucion(tt.req, deposito)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errs.IsKind(err, errs.KindValidation))
		})
	}
}

func TestValidarResolucion_SinDepositoConocido(t *testing.T) {
	t.Parallel()

	// without a known deposit the upper bound cannot be enforced locally;
	// the server still owns the final say
	nota := "nota"
	req := model.ResolverIncidenteRequest{Decision: model.DecisionRetenerParcial, MontoRetenido: monto(9999), Nota: &nota}
	require.NoError(t, renta.ValidarResolucion(req, 0))
}

func TestValidarCancelacion(t *testing.T) {
	t.Parallel()

	require.Error(t, renta.ValidarCancelacion("", renta.RolDueno))
	require.Error(t, renta.ValidarCancelacion("   ", renta.RolDueno))
	require.NoError(t, renta.ValidarCancelacion("ya no lo necesito rentar", renta.RolDueno))
	require.NoError(t, renta.ValidarCancelacion("", renta.RolArrendatario))
	require.NoError(t, renta.ValidarCancelacion("", renta.RolAdmin))
}

func TestValidarIncidente(t *testing.T) {
	t.Parallel()

	require.Error(t, renta.ValidarIncidente(""))
	require.Error(t, renta.ValidarIncidente("daño"))
	require.Error(t, renta.ValidarIncidente("  ab  "))
	require.NoError(t, renta.ValidarIncidente("rayón"))
	require.NoError(t, renta.ValidarIncidente("pantalla rota al devolver"))
}

func TestValidarVentanasElegidas(t *testing.T) {
	t.Parallel()

	require.Error(t, renta.ValidarVentanasElegidas("", ""))
	require.Error(t, renta.ValidarVentanasElegidas("2026-03-01 10:00", ""))
	require.Error(t, renta.ValidarVentanasElegidas(" ", "2026-03-05 18:00"))
	require.NoError(t, renta.ValidarVentanasElegidas("2026-03-01 10:00", "2026-03-05 18:00"))
}

func TestValidarMensajeChat(t *testing.T) {
	t.Parallel()

	require.Error(t, renta.ValidarMensajeChat("   "))
	require.NoError(t, renta.ValidarMensajeChat("¿a qué hora paso?"))
}
