package resumen

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/executor"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/poll"
	"github.com/mercadorenta/rentas-client/internal/renta"
)

// RentaAPI is the slice of the rentals service the detail screen consumes.
type RentaAPI interface {
	Obtener(ctx context.Context, id int64) (model.Renta, error)
	Pagar(ctx context.Context, id int64) (model.Renta, error)
	Confirmar(ctx context.Context, id int64) (model.Renta, error)
	EnUso(ctx context.Context, id int64) (model.Renta, error)
	Devolver(ctx context.Context, id int64) (model.Renta, error)
	Finalizar(ctx context.Context, id int64) (model.Renta, error)
	Cancelar(ctx context.Context, id int64, motivo *string) (model.Renta, error)
	Incidente(ctx context.Context, id int64, descripcion string) (model.Renta, error)
	ResolverIncidente(ctx context.Context, id int64, req model.ResolverIncidenteRequest) (model.Renta, error)
	Coordinar(ctx context.Context, id int64, req model.CoordinarRequest) (model.Renta, error)
	AceptarCoordinacion(ctx context.Context, id int64, req model.AceptarCoordinacionRequest) (model.Renta, error)
	ConfirmarEntregaOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error)
	ConfirmarDevolucionOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error)
	Chat(ctx context.Context, id int64) ([]model.ChatMessage, error)
	EnviarChat(ctx context.Context, id int64, mensaje string) (model.ChatMessage, error)
	ChatMarcarLeido(ctx context.Context, id int64) error
	Calificacion(ctx context.Context, id int64) (*model.Calificacion, error)
	Calificar(ctx context.Context, id int64, req model.CalificarRequest) error
	Recibo(ctx context.Context, id int64) ([]byte, error)
}

const msgChatRapido = "Estás enviando mensajes muy rápido, espera un momento."

// Session is the detail-screen state: the loaded rental, its derived
// permission matrix and timelines, the chat loop and every action the screen
// can trigger. It is owned by a single consumer and is not goroutine-safe;
// only the chat callback arrives from another goroutine.
type Session struct {
	log     *zap.Logger
	api     RentaAPI
	exec    *executor.Executor
	notify  executor.Notifier
	viewer  renta.Viewer
	limiter *rate.Limiter

	chat *poll.ChatPoller

	rentaID      int64
	renta        *model.Renta
	permisos     renta.Permisos
	calificacion *model.Calificacion
	descargando  bool
}

// Config carries the session knobs taken from the app config.
type Config struct {
	ChatInterval  time.Duration
	ChatSendBurst int
}

func NewSession(log *zap.Logger, api RentaAPI, exec *executor.Executor, notify executor.Notifier, viewer renta.Viewer, cfg Config, onMensajes func([]model.ChatMessage)) *Session {
	s := &Session{
		log:     log.Named("resumen"),
		api:     api,
		exec:    exec,
		notify:  notify,
		viewer:  viewer,
		limiter: rate.NewLimiter(rate.Every(time.Second), cfg.ChatSendBurst),
	}
	s.chat = poll.NewChatPoller(log, cfg.ChatInterval,
		func(ctx context.Context) ([]model.ChatMessage, error) { return api.Chat(ctx, s.rentaID) },
		onMensajes)
	return s
}

// Cargar loads (or reloads) the rental and re-derives everything from it.
func (s *Session) Cargar(ctx context.Context, id int64) error {
	r, err := s.api.Obtener(ctx, id)
	if err != nil {
		return errors.Wrap(err, "cargar renta")
	}
	s.rentaID = id
	s.aplicar(ctx, &r)
	return nil
}

func (s *Session) Renta() *model.Renta { return s.renta }

func (s *Session) Permisos() renta.Permisos { return s.permisos }

func (s *Session) Calificacion() *model.Calificacion { return s.calificacion }

func (s *Session) Descargando() bool { return s.descargando }

// MiniTimeline projects the compact strip for the loaded rental.
func (s *Session) MiniTimeline() []renta.Paso {
	if s.renta == nil {
		return nil
	}
	return renta.MiniTimeline(renta.DeRenta(s.renta))
}

// HistorialTimeline projects the detailed history for the loaded rental.
func (s *Session) HistorialTimeline() []renta.PasoHistorial {
	if s.renta == nil {
		return nil
	}
	return renta.HistorialTimeline(renta.DeRenta(s.renta))
}

// Cerrar tears the session down; the chat loop stops and no callback fires
// afterwards.
func (s *Session) Cerrar() {
	s.chat.Stop()
}

// aplicar installs a fresh record: recompute permissions, sync the chat
// loop with the new state and load the own rating once the rental closes.
func (s *Session) aplicar(ctx context.Context, r *model.Renta) {
	s.renta = r
	s.permisos = renta.Evaluar(r, s.viewer, s.exec.EnCurso())

	if s.permisos.ChatVisible {
		s.chat.Start(ctx)
		// every refresh while the chat is on screen clears the unread
		// counter server-side, best effort
		if err := s.api.ChatMarcarLeido(ctx, s.rentaID); err != nil {
			s.log.Debug("marcar leído falló", zap.Int64("renta", s.rentaID), zap.Error(err))
		}
	} else {
		s.chat.Stop()
	}

	if s.permisos.Calificar && s.calificacion == nil {
		cal, err := s.api.Calificacion(ctx, s.rentaID)
		if err != nil {
			s.log.Debug("calificación no disponible", zap.Int64("renta", s.rentaID), zap.Error(err))
			return
		}
		s.calificacion = cal
	}
}

// accion funnels every state-changing call through the executor and installs
// whatever record the settlement produced.
func (s *Session) accion(ctx context.Context, call func(ctx context.Context) error, successMsg string) error {
	r, err := s.exec.Run(ctx, s.rentaID, call, successMsg)
	if r != nil {
		s.aplicar(ctx, r)
	}
	return err
}

func (s *Session) Pagar(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Pagar(ctx, s.rentaID)
		return err
	}, "Pago realizado.")
}

func (s *Session) ConfirmarEntrega(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Confirmar(ctx, s.rentaID)
		return err
	}, "Entrega confirmada.")
}

func (s *Session) MarcarEnUso(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.EnUso(ctx, s.rentaID)
		return err
	}, "Renta en uso.")
}

func (s *Session) Devolver(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Devolver(ctx, s.rentaID)
		return err
	}, "Devolución registrada.")
}

func (s *Session) Finalizar(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Finalizar(ctx, s.rentaID)
		return err
	}, "Renta finalizada.")
}

func (s *Session) Cancelar(ctx context.Context, motivo string) error {
	if err := renta.ValidarCancelacion(motivo, s.viewer.Rol(s.renta)); err != nil {
		s.notify.Error(err.Error())
		return err
	}
	var m *string
	if motivo != "" {
		m = &motivo
	}
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Cancelar(ctx, s.rentaID, m)
		return err
	}, "Renta cancelada.")
}

func (s *Session) ReportarIncidente(ctx context.Context, descripcion string) error {
	if err := renta.ValidarIncidente(descripcion); err != nil {
		s.notify.Error(err.Error())
		return err
	}
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Incidente(ctx, s.rentaID, descripcion)
		return err
	}, "Incidente reportado.")
}

func (s *Session) ResolverIncidente(ctx context.Context, req model.ResolverIncidenteRequest) error {
	var deposito float64
	if s.renta != nil {
		deposito = s.renta.Deposito()
	}
	if err := renta.ValidarResolucion(req, deposito); err != nil {
		s.notify.Error(err.Error())
		return err
	}
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.ResolverIncidente(ctx, s.rentaID, req)
		return err
	}, "Incidente resuelto.")
}

func (s *Session) GuardarCoordinacion(ctx context.Context, req model.CoordinarRequest) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Coordinar(ctx, s.rentaID, req)
		return err
	}, "Coordinación guardada.")
}

func (s *Session) ConfirmarCoordinacion(ctx context.Context) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.Coordinar(ctx, s.rentaID, model.CoordinarRequest{Confirmar: true})
		return err
	}, "Coordinación confirmada.")
}

func (s *Session) AceptarCoordinacion(ctx context.Context, entrega, devolucion string) error {
	if err := renta.ValidarVentanasElegidas(entrega, devolucion); err != nil {
		s.notify.Error(err.Error())
		return err
	}
	req := model.AceptarCoordinacionRequest{VentanaEntrega: entrega, VentanaDevolucion: devolucion}
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.AceptarCoordinacion(ctx, s.rentaID, req)
		return err
	}, "Ventanas aceptadas.")
}

func (s *Session) ConfirmarEntregaOTP(ctx context.Context, req model.OtpRequest) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.ConfirmarEntregaOTP(ctx, s.rentaID, req)
		return err
	}, "Entrega confirmada con código.")
}

func (s *Session) ConfirmarDevolucionOTP(ctx context.Context, req model.OtpRequest) error {
	return s.accion(ctx, func(ctx context.Context) error {
		_, err := s.api.ConfirmarDevolucionOTP(ctx, s.rentaID, req)
		return err
	}, "Devolución confirmada con código.")
}

func (s *Session) Calificar(ctx context.Context, req model.CalificarRequest) error {
	err := s.accion(ctx, func(ctx context.Context) error {
		return s.api.Calificar(ctx, s.rentaID, req)
	}, "¡Gracias por calificar!")
	if err == nil {
		s.calificacion = &model.Calificacion{Estrellas: req.Estrellas, Comentario: req.Comentario}
	}
	return err
}

// EnviarChat bypasses the executor: sending a message is not a lifecycle
// transition and must not trip the in-flight guard. A local throttle keeps
// bursts off the wire; a server 429 maps to its own message.
func (s *Session) EnviarChat(ctx context.Context, mensaje string) (*model.ChatMessage, error) {
	if err := renta.ValidarMensajeChat(mensaje); err != nil {
		s.notify.Error(err.Error())
		return nil, err
	}
	if !s.limiter.Allow() {
		s.notify.Error(msgChatRapido)
		return nil, errs.Validation(msgChatRapido)
	}

	msg, err := s.api.EnviarChat(ctx, s.rentaID, mensaje)
	if err != nil {
		if errs.IsKind(err, errs.KindRateLimited) {
			s.notify.Error(msgChatRapido)
		} else {
			s.notify.Error("No se pudo enviar el mensaje.")
		}
		return nil, err
	}
	return &msg, nil
}

// DescargarRecibo fetches the receipt bytes behind its own in-flight flag,
// separate from the action guard so a slow download never blocks lifecycle
// buttons.
func (s *Session) DescargarRecibo(ctx context.Context) ([]byte, error) {
	if s.descargando {
		return nil, errs.Validation("La descarga ya está en curso.")
	}
	s.descargando = true
	defer func() { s.descargando = false }()

	data, err := s.api.Recibo(ctx, s.rentaID)
	if err != nil {
		s.notify.Error("No se pudo descargar el recibo.")
		return nil, err
	}
	return data, nil
}
