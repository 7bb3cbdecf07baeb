package notificacion

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/service/apiclient"
)

// Service is the notifications collaborator; the badge poller falls back to
// its unread count when the chat total endpoint is unavailable.
type Service struct {
	api  *apiclient.Client
	base string
}

func NewService(log *zap.Logger, cfg config.Config, tokens apiclient.TokenSource) *Service {
	return &Service{
		api:  apiclient.New(log, cfg.API.Timeout, tokens),
		base: cfg.API.BaseURL + "/notificaciones",
	}
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	data, err := apiclient.Call[model.NotificacionesData](ctx, s.api, http.MethodGet, s.base, nil)
	if err != nil {
		return 0, err
	}
	return data.UnreadCount, nil
}
