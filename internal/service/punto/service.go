package punto

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/service/apiclient"
)

// Service lists the active neutral drop-off points offered during delivery
// coordination.
type Service struct {
	api  *apiclient.Client
	base string
}

func NewService(log *zap.Logger, cfg config.Config, tokens apiclient.TokenSource) *Service {
	return &Service{
		api:  apiclient.New(log, cfg.API.Timeout, tokens),
		base: cfg.API.BaseURL + "/puntos-entrega",
	}
}

type listaData struct {
	Items []model.PuntoEntrega `json:"items"`
}

func (s *Service) ListarActivos(ctx context.Context) ([]model.PuntoEntrega, error) {
	data, err := apiclient.Call[listaData](ctx, s.api, http.MethodGet, s.base, nil)
	if err != nil {
		return nil, err
	}
	return data.Items, nil
}
