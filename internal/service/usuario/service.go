package usuario

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/service/apiclient"
)

// Service is the `/auth` collaborator: profile lookups for the gate check
// plus token acquisition for the CLI.
type Service struct {
	api  *apiclient.Client
	base string
}

func NewService(log *zap.Logger, cfg config.Config, tokens apiclient.TokenSource) *Service {
	return &Service{
		api:  apiclient.New(log, cfg.API.Timeout, tokens),
		base: cfg.API.BaseURL + "/auth",
	}
}

func (s *Service) Me(ctx context.Context) (model.Me, error) {
	return apiclient.Call[model.Me](ctx, s.api, http.MethodGet, s.base+"/me", nil)
}

type loginRequest struct {
	CorreoElectronico string `json:"correo_electronico"`
	Contrasena        string `json:"contrasena"`
}

func (s *Service) Login(ctx context.Context, correo, contrasena string) (model.LoginData, error) {
	return apiclient.Call[model.LoginData](ctx, s.api, http.MethodPost, s.base+"/login", loginRequest{
		CorreoElectronico: correo,
		Contrasena:        contrasena,
	})
}

func (s *Service) EnviarVerificacionEmail(ctx context.Context) error {
	_, err := s.api.Do(ctx, http.MethodPost, s.base+"/enviar-verificacion", struct{}{})
	return err
}
