package articulo

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/service/apiclient"
)

// Service is the `/articulos` collaborator. Publishing goes through the
// profile gate, which is why the creation call lives in this module at all;
// the rest of the listing CRUD is outside the client core.
type Service struct {
	api  *apiclient.Client
	base string
}

func NewService(log *zap.Logger, cfg config.Config, tokens apiclient.TokenSource) *Service {
	return &Service{
		api:  apiclient.New(log, cfg.API.Timeout, tokens),
		base: cfg.API.BaseURL + "/articulos",
	}
}

func (s *Service) Crear(ctx context.Context, req model.CrearArticuloRequest) (model.ArticuloResumen, error) {
	return apiclient.Call[model.ArticuloResumen](ctx, s.api, http.MethodPost, s.base, req)
}
