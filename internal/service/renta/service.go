package renta

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/service/apiclient"
)

// Service is the `/rentas` REST collaborator: every lifecycle transition,
// coordination update, OTP confirmation, chat and rating call goes through
// here.
type Service struct {
	api  *apiclient.Client
	base string
}

func NewService(log *zap.Logger, cfg config.Config, tokens apiclient.TokenSource) *Service {
	return &Service{
		api:  apiclient.New(log, cfg.API.Timeout, tokens),
		base: cfg.API.BaseURL + "/rentas",
	}
}

func (s *Service) Crear(ctx context.Context, req model.CrearRentaRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, s.base, req)
}

func (s *Service) Obtener(ctx context.Context, id int64) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d", s.base, id), nil)
}

func (s *Service) Pagar(ctx context.Context, id int64) (model.Renta, error) {
	return s.transicion(ctx, id, "pagar")
}

func (s *Service) Confirmar(ctx context.Context, id int64) (model.Renta, error) {
	return s.transicion(ctx, id, "confirmar")
}

func (s *Service) EnUso(ctx context.Context, id int64) (model.Renta, error) {
	return s.transicion(ctx, id, "en-uso")
}

func (s *Service) Devolver(ctx context.Context, id int64) (model.Renta, error) {
	return s.transicion(ctx, id, "devolver")
}

func (s *Service) Finalizar(ctx context.Context, id int64) (model.Renta, error) {
	return s.transicion(ctx, id, "finalizar")
}

func (s *Service) transicion(ctx context.Context, id int64, accion string) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/%s", s.base, id, accion), struct{}{})
}

func (s *Service) Cancelar(ctx context.Context, id int64, motivo *string) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/cancelar", s.base, id), model.CancelarRequest{Motivo: motivo})
}

func (s *Service) Incidente(ctx context.Context, id int64, descripcion string) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/incidente", s.base, id), model.IncidenteRequest{Descripcion: descripcion})
}

func (s *Service) ResolverIncidente(ctx context.Context, id int64, req model.ResolverIncidenteRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/resolver-incidente", s.base, id), req)
}

func (s *Service) Coordinar(ctx context.Context, id int64, req model.CoordinarRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/coordinar", s.base, id), req)
}

func (s *Service) AceptarCoordinacion(ctx context.Context, id int64, req model.AceptarCoordinacionRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/aceptar-coordinacion", s.base, id), req)
}

func (s *Service) ConfirmarEntregaOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/confirmar-entrega-otp", s.base, id), req)
}

func (s *Service) ConfirmarDevolucionOTP(ctx context.Context, id int64, req model.OtpRequest) (model.Renta, error) {
	return apiclient.Call[model.Renta](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/confirmar-devolucion-otp", s.base, id), req)
}

func (s *Service) Chat(ctx context.Context, id int64) ([]model.ChatMessage, error) {
	data, err := apiclient.Call[model.ChatResponse](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d/chat", s.base, id), nil)
	if err != nil {
		return nil, err
	}
	return data.Items, nil
}

func (s *Service) EnviarChat(ctx context.Context, id int64, mensaje string) (model.ChatMessage, error) {
	return apiclient.Call[model.ChatMessage](ctx, s.api, http.MethodPost, fmt.Sprintf("%s/%d/chat", s.base, id), model.ChatSendRequest{Mensaje: mensaje})
}

func (s *Service) ChatMarcarLeido(ctx context.Context, id int64) error {
	_, err := s.api.Do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/chat/marcar-leido", s.base, id), struct{}{})
	return err
}

func (s *Service) ChatUnreadCount(ctx context.Context, id int64) (int, error) {
	data, err := apiclient.Call[model.UnreadCountData](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d/chat/unread-count", s.base, id), nil)
	if err != nil {
		return 0, err
	}
	return data.Unread, nil
}

func (s *Service) ChatUnreadTotal(ctx context.Context) (int, error) {
	data, err := apiclient.Call[model.UnreadTotalData](ctx, s.api, http.MethodGet, s.base+"/chat/unread-total", nil)
	if err != nil {
		return 0, err
	}
	return data.Total, nil
}

func (s *Service) Calificacion(ctx context.Context, id int64) (*model.Calificacion, error) {
	data, err := apiclient.Call[model.CalificacionData](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d/calificacion", s.base, id), nil)
	if err != nil {
		return nil, err
	}
	return data.Calificacion, nil
}

func (s *Service) Calificar(ctx context.Context, id int64, req model.CalificarRequest) error {
	_, err := s.api.Do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/calificar", s.base, id), req)
	return err
}

// Recibo fetches the receipt as raw bytes (the endpoint returns a binary
// document, not the JSON envelope).
func (s *Service) Recibo(ctx context.Context, id int64) ([]byte, error) {
	return s.api.Do(ctx, http.MethodGet, fmt.Sprintf("%s/%d/recibo", s.base, id), nil)
}

func (s *Service) MisRentas(ctx context.Context, como string) ([]model.Renta, error) {
	data, err := apiclient.Call[model.MisRentasData](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/mis?como=%s", s.base, como), nil)
	if err != nil {
		return nil, err
	}
	return data.Items, nil
}

// Mias is the paged inbox listing.
func (s *Service) Mias(ctx context.Context, rol, estado string, page, perPage int) (model.InboxPage, error) {
	url := fmt.Sprintf("%s/mias?rol=%s&estado=%s&page=%d&per_page=%d", s.base, rol, estado, page, perPage)
	return apiclient.Call[model.InboxPage](ctx, s.api, http.MethodGet, url, nil)
}
