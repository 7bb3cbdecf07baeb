package resumen_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/executor"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/renta"
	"github.com/mercadorenta/rentas-client/internal/resumen"
)

const (
	idDueno        = int64(10)
	idArrendatario = int64(20)
	idRenta        = int64(77)
)

type apiStub struct {
	mu       sync.Mutex
	actual   model.Renta
	llamadas []string

	errAccion    error
	calificacion *model.Calificacion
	mensajes     []model.ChatMessage
	recibo       []byte
}

func (a *apiStub) registrar(op string) {
	a.mu.Lock()
	a.llamadas = append(a.llamadas, op)
	a.mu.Unlock()
}

func (a *apiStub) ops() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.llamadas...)
}

func (a *apiStub) estado() model.Renta {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.actual
}

func (a *apiStub) transita(op string, hasta renta.Estado) (model.Renta, error) {
	a.registrar(op)
	if a.errAccion != nil {
		return model.Renta{}, a.errAccion
	}
	a.mu.Lock()
	a.actual.EstadoRenta = string(hasta)
	r := a.actual
	a.mu.Unlock()
	return r, nil
}

func (a *apiStub) Obtener(ctx context.Context, id int64) (model.Renta, error) {
	a.registrar("obtener")
	return a.estado(), nil
}

func (a *apiStub) Pagar(ctx context.Context, id int64) (model.Renta, error) {
	return a.transita("pagar", renta.EstadoPagada)
}

func (a *apiStub) Confirmar(ctx context.Context, id int64) (model.Renta, error) {
	return a.transita("confirmar", renta.EstadoConfirmada)
}

func (a *apiStub) EnUso(ctx context.Context, id int64) (model.Renta, error) {
	return a.transita("en_uso", renta.EstadoEnUso)
}

func (a *apiStub) Devolver(ctx context.Context, id int64) (model.Renta, error) {
	return a.transita("devolver", renta.EstadoDevuelta)
}

func (a *apiStub) Finalizar(ctx context.Context, id int64) (model.Renta, error) {
	return a.transita("finalizar", renta.EstadoFinalizada)
}

func (a *apiStub) Cancelar(ctx context.Context, id int64, motivo *string) (model.Renta, error) {
	return a.transita("cancelar", renta.EstadoCancelada)
}

func (a *apiStub) Incidente(ctx context.Context, id int64, descripcion string) (model.Renta, error) {
	return a.transita("incidente", renta.EstadoIncidente)
}

func (a *apiStub) ResolverIncidente(ctx context.Context, id int64, req model.ResolverIncidenteRequest) (model.Renta, error) {
	return a.transita("resolver", renta.EstadoFinalizada)
}

func (a *apiStub) Coordinar(ctx context.Context, id int64, req model.CoordinarRequest) (model.Renta, error) {
	a.registrar("coordinar")
	return a.estado(), a.errAccion
}

func (a *apiStub) AceptarCoordinacion(ctx context.Context, id int64, req model.AceptarCoordinacionRequest) (model.Renta, error) {
	a.registrar("aceptar_coordinacion")
	return a.estado(), a.errAccion
}

func (a *apiStub) ConfirmarEntregaOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error) {
	return a.transita("otp_entrega", renta.EstadoConfirmada)
}

func (a *apiStub) ConfirmarDevolucionOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error) {
	return a.transita("otp_devolucion", renta.EstadoDevuelta)
}

func (a *apiStub) Chat(ctx context.Context, id int64) ([]model.ChatMessage, error) {
	a.registrar("chat")
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mensajes, nil
}

func (a *apiStub) EnviarChat(ctx context.Context, id int64, mensaje string) (model.ChatMessage, error) {
	a.registrar("enviar_chat")
	if a.errAccion != nil {
		return model.ChatMessage{}, a.errAccion
	}
	return model.ChatMessage{ID: 1, IDRenta: id, Mensaje: mensaje}, nil
}

func (a *apiStub) ChatMarcarLeido(ctx context.Context, id int64) error {
	a.registrar("marcar_leido")
	return nil
}

func (a *apiStub) Calificacion(ctx context.Context, id int64) (*model.Calificacion, error) {
	a.registrar("calificacion")
	return a.calificacion, nil
}

func (a *apiStub) Calificar(ctx context.Context, id int64, req model.CalificarRequest) error {
	a.registrar("calificar")
	return a.errAccion
}

func (a *apiStub) Recibo(ctx context.Context, id int64) ([]byte, error) {
	a.registrar("recibo")
	return a.recibo, a.errAccion
}

type avisos struct {
	mu                     sync.Mutex
	exitos, infos, errores []string
}

func (n *avisos) Success(msg string) {
	n.mu.Lock()
	n.exitos = append(n.exitos, msg)
	n.mu.Unlock()
}

func (n *avisos) Info(msg string) {
	n.mu.Lock()
	n.infos = append(n.infos, msg)
	n.mu.Unlock()
}

func (n *avisos) Error(msg string) {
	n.mu.Lock()
	n.errores = append(n.errores, msg)
	n.mu.Unlock()
}

func (n *avisos) ultimosErrores() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errores...)
}

type navStub struct{ logins int }

func (n *navStub) ToLogin() { n.logins++ }

type badgeStub struct{ refreshes int32 }

func (b *badgeStub) RefreshOnce(context.Context) { b.refreshes++ }

func rentaBase(estado renta.Estado) model.Renta {
	return model.Renta{
		ID:             idRenta,
		IDPropietario:  idDueno,
		IDArrendatario: idArrendatario,
		EstadoRenta:    string(estado),
		ChatHabilitado: true,
		MontoDeposito:  500,
	}
}

func newSession(t *testing.T, api *apiStub, viewerID int64, burst int) (*resumen.Session, *avisos) {
	t.Helper()
	notify := &avisos{}
	log := zap.NewExample()
	exec := executor.New(log, api, notify, &navStub{}, &badgeStub{})
	s := resumen.NewSession(log, api, exec, notify, renta.Viewer{UserID: viewerID},
		resumen.Config{ChatInterval: 20 * time.Millisecond, ChatSendBurst: burst},
		func([]model.ChatMessage) {})
	t.Cleanup(s.Cerrar)
	return s, notify
}

func TestSession_Cargar(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPendientePago)}
	s, _ := newSession(t, api, idArrendatario, 3)

	require.NoError(t, s.Cargar(context.Background(), idRenta))
	require.NotNil(t, s.Renta())
	require.True(t, s.Permisos().PagarAhora)
	require.NotEmpty(t, s.MiniTimeline())
	require.NotEmpty(t, s.HistorialTimeline())
}

func TestSession_AccionActualizaEstado(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPendientePago)}
	s, notify := newSession(t, api, idArrendatario, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	require.NoError(t, s.Pagar(context.Background()))

	require.Equal(t, string(renta.EstadoPagada), s.Renta().EstadoRenta)
	require.False(t, s.Permisos().PagarAhora)
	require.Contains(t, notify.exitos, "Pago realizado.")
	require.Contains(t, api.ops(), "pagar")
}

func TestSession_MarcaLeidoEnCadaRefresco(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPendientePago)}
	s, _ := newSession(t, api, idArrendatario, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))
	require.NoError(t, s.Pagar(context.Background()))

	// while the chat stays on screen every refresh clears the unread
	// counter, not just the first load
	marcados := 0
	for _, op := range api.ops() {
		if op == "marcar_leido" {
			marcados++
		}
	}
	require.Equal(t, 2, marcados)
}

func TestSession_CancelarDuenoRequiereMotivo(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPagada)}
	s, notify := newSession(t, api, idDueno, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	err := s.Cancelar(context.Background(), "   ")
	require.True(t, errs.IsKind(err, errs.KindValidation))
	require.NotContains(t, api.ops(), "cancelar")
	require.NotEmpty(t, notify.ultimosErrores())

	require.NoError(t, s.Cancelar(context.Background(), "el artículo se dañó"))
	require.Contains(t, api.ops(), "cancelar")
}

func TestSession_ResolverRechazaMontosFueraDeRango(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoIncidente)}
	s, _ := newSession(t, api, idDueno, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	nota := "daño"
	monto := 500.0 // equals the deposit
	err := s.ResolverIncidente(context.Background(), model.ResolverIncidenteRequest{
		Decision:      model.DecisionRetenerParcial,
		MontoRetenido: &monto,
		Nota:          &nota,
	})
	require.True(t, errs.IsKind(err, errs.KindValidation))
	require.NotContains(t, api.ops(), "resolver")

	monto = 100
	require.NoError(t, s.ResolverIncidente(context.Background(), model.ResolverIncidenteRequest{
		Decision:      model.DecisionRetenerParcial,
		MontoRetenido: &monto,
		Nota:          &nota,
	}))
	require.Contains(t, api.ops(), "resolver")
}

func TestSession_AceptarCoordinacionExigeVentanas(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPagada)}
	s, _ := newSession(t, api, idArrendatario, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	err := s.AceptarCoordinacion(context.Background(), "2026-03-01 10:00", "")
	require.True(t, errs.IsKind(err, errs.KindValidation))
	require.NotContains(t, api.ops(), "aceptar_coordinacion")
}

func TestSession_EnviarChat(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPagada)}
	s, _ := newSession(t, api, idArrendatario, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	msg, err := s.EnviarChat(context.Background(), "hola, ¿a qué hora?")
	require.NoError(t, err)
	require.Equal(t, "hola, ¿a qué hora?", msg.Mensaje)
}

func TestSession_EnviarChatConAcelerador(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPagada)}
	s, notify := newSession(t, api, idArrendatario, 1)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	_, err := s.EnviarChat(context.Background(), "uno")
	require.NoError(t, err)

	// the second burst message never leaves the process
	antes := len(api.ops())
	_, err = s.EnviarChat(context.Background(), "dos")
	require.Error(t, err)
	require.Len(t, api.ops(), antes)
	require.Contains(t, notify.ultimosErrores(), "Estás enviando mensajes muy rápido, espera un momento.")
}

func TestSession_EnviarChat429(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoPagada)}
	s, notify := newSession(t, api, idArrendatario, 5)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	api.errAccion = errs.Classify(http.StatusTooManyRequests, nil, true)
	_, err := s.EnviarChat(context.Background(), "rápido")
	require.Error(t, err)
	require.Contains(t, notify.ultimosErrores(), "Estás enviando mensajes muy rápido, espera un momento.")
}

func TestSession_CalificacionCargadaAlFinalizar(t *testing.T) {
	t.Parallel()

	cal := &model.Calificacion{Estrellas: 4}
	api := &apiStub{actual: rentaBase(renta.EstadoFinalizada), calificacion: cal}
	s, _ := newSession(t, api, idArrendatario, 3)

	require.NoError(t, s.Cargar(context.Background(), idRenta))
	require.Equal(t, cal, s.Calificacion())
	require.Contains(t, api.ops(), "calificacion")
}

func TestSession_DescargarRecibo(t *testing.T) {
	t.Parallel()

	api := &apiStub{actual: rentaBase(renta.EstadoFinalizada), recibo: []byte("%PDF-1.4")}
	s, _ := newSession(t, api, idArrendatario, 3)
	require.NoError(t, s.Cargar(context.Background(), idRenta))

	data, err := s.DescargarRecibo(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4"), data)
	require.False(t, s.Descargando())
}

func TestSession_ChatSeDetieneEnEstadoTerminal(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	entregas := 0
	api := &apiStub{actual: rentaBase(renta.EstadoPagada), mensajes: []model.ChatMessage{{ID: 1}}}

	notify := &avisos{}
	log := zap.NewExample()
	exec := executor.New(log, api, notify, &navStub{}, &badgeStub{})
	s := resumen.NewSession(log, api, exec, notify, renta.Viewer{UserID: idArrendatario},
		resumen.Config{ChatInterval: 20 * time.Millisecond, ChatSendBurst: 3},
		func([]model.ChatMessage) {
			mu.Lock()
			entregas++
			mu.Unlock()
		})
	defer s.Cerrar()

	require.NoError(t, s.Cargar(context.Background(), idRenta))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return entregas > 0
	}, time.Second, 5*time.Millisecond)

	// cancelling flips chat off; the poll loop must stop with it
	require.NoError(t, s.Cancelar(context.Background(), ""))
	mu.Lock()
	tras := entregas
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	require.Equal(t, tras, entregas)
	mu.Unlock()
}
