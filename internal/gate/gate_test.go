package gate_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/gate"
	"github.com/mercadorenta/rentas-client/internal/model"
)

type perfilesStub struct {
	me  model.Me
	err error
}

func (s *perfilesStub) Me(context.Context) (model.Me, error) { return s.me, s.err }

type modalStub struct {
	aperturas [][]string
}

func (m *modalStub) Abrir(missing []string) {
	m.aperturas = append(m.aperturas, missing)
}

func str(s string) *string { return &s }
func boolp(b bool) *bool   { return &b }

func perfilCompleto() model.Me {
	return model.Me{
		ID:                1,
		CorreoElectronico: "ana@example.com",
		EmailVerificado:   boolp(true),
		Telefono:          str("5512345678"),
		Ciudad:            str("Guadalajara"),
		Estado:            str("Jalisco"),
		Pais:              str("México"),
	}
}

func TestFaltantes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(me *model.Me)
		want []string
	}{
		{"completo", func(*model.Me) {}, nil},
		{"correo sin verificar", func(me *model.Me) { me.EmailVerificado = boolp(false) }, []string{gate.FaltaCorreoVerificado}},
		{"sin bandera usa verificado", func(me *model.Me) { me.EmailVerificado = nil; me.Verificado = false }, []string{gate.FaltaCorreoVerificado}},
		{"sin telefono", func(me *model.Me) { me.Telefono = nil }, []string{gate.FaltaTelefono}},
		{"telefono en blanco", func(me *model.Me) { me.Telefono = str("  ") }, []string{gate.FaltaTelefono}},
		{"ubicacion incompleta", func(me *model.Me) { me.Estado = nil }, []string{gate.FaltaUbicacion}},
		{"todo faltante", func(me *model.Me) {
			me.EmailVerificado = boolp(false)
			me.Telefono = nil
			me.Ciudad = nil
		}, []string{gate.FaltaCorreoVerificado, gate.FaltaTelefono, gate.FaltaUbicacion}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			me := perfilCompleto()
			tt.mod(&me)
			require.Equal(t, tt.want, gate.Faltantes(me))
		})
	}
}

func newChecker(perfiles *perfilesStub, admin bool) (*gate.Checker, *modalStub) {
	modal := &modalStub{}
	c := gate.New(zap.NewExample(), perfiles, modal, func() bool { return admin })
	return c, modal
}

func TestPermitir_PerfilCompleto(t *testing.T) {
	t.Parallel()

	c, modal := newChecker(&perfilesStub{me: perfilCompleto()}, false)
	require.NoError(t, c.Permitir(context.Background(), gate.AccionCrearRenta))
	require.Empty(t, modal.aperturas)
}

func TestPermitir_PerfilIncompleto(t *testing.T) {
	t.Parallel()

	me := perfilCompleto()
	me.Telefono = nil
	c, modal := newChecker(&perfilesStub{me: me}, false)

	err := c.Permitir(context.Background(), gate.AccionCrearRenta)
	require.True(t, errs.IsKind(err, errs.KindEligibility))
	require.Len(t, modal.aperturas, 1)
	require.Equal(t, []string{gate.FaltaTelefono}, modal.aperturas[0])
}

func TestPermitir_PerfilNoDisponible(t *testing.T) {
	t.Parallel()

	// the pre-flight is a shortcut: without a profile the server decides
	c, modal := newChecker(&perfilesStub{err: errors.New("timeout")}, false)
	require.NoError(t, c.Permitir(context.Background(), gate.AccionPublicar))
	require.Empty(t, modal.aperturas)
}

func TestPermitir_AdminBloqueadoLocalmente(t *testing.T) {
	t.Parallel()

	c, modal := newChecker(&perfilesStub{me: perfilCompleto()}, true)

	err := c.Permitir(context.Background(), gate.AccionPublicar)
	require.True(t, errs.IsKind(err, errs.KindAdminForbidden))
	require.Empty(t, modal.aperturas)
}

func TestAbsorber_EligibilidadReabreModal(t *testing.T) {
	t.Parallel()

	c, modal := newChecker(&perfilesStub{me: perfilCompleto()}, false)

	// the server disagrees with the local pass; its list is authoritative
	body := []byte(`{"success":false,"message":"perfil incompleto","payload":{"code":"PROFILE_INCOMPLETE","missing":["telefono","ubicacion"]}}`)
	err := errs.Classify(http.StatusForbidden, body, true)

	require.True(t, c.Absorber(gate.AccionCrearRenta, err))
	require.Len(t, modal.aperturas, 1)
	require.Equal(t, []string{"telefono", "ubicacion"}, modal.aperturas[0])
	require.False(t, c.Bloqueada(gate.AccionCrearRenta))
}

func TestAbsorber_AdminForbiddenEsPegajoso(t *testing.T) {
	t.Parallel()

	c, _ := newChecker(&perfilesStub{me: perfilCompleto()}, false)

	body := []byte(`{"success":false,"message":"prohibido","payload":{"code":"ADMIN_FORBIDDEN"}}`)
	err := errs.Classify(http.StatusForbidden, body, true)

	require.True(t, c.Absorber(gate.AccionPublicar, err))
	require.True(t, c.Bloqueada(gate.AccionPublicar))

	// the block is per action, not global
	require.False(t, c.Bloqueada(gate.AccionCrearRenta))

	// and it holds on the next pre-flight
	perr := c.Permitir(context.Background(), gate.AccionPublicar)
	require.True(t, errs.IsKind(perr, errs.KindAdminForbidden))
}

func TestAbsorber_OtrosErroresNoSeConsumen(t *testing.T) {
	t.Parallel()

	c, modal := newChecker(&perfilesStub{me: perfilCompleto()}, false)

	require.False(t, c.Absorber(gate.AccionPublicar, errors.New("caída de red")))
	require.False(t, c.Absorber(gate.AccionPublicar, errs.Classify(http.StatusConflict, nil, true)))
	require.Empty(t, modal.aperturas)
}
