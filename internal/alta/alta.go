package alta

import (
	"context"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/gate"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/pkg/validate"
)

// Articulos publishes a new listing.
type Articulos interface {
	Crear(ctx context.Context, req model.CrearArticuloRequest) (model.ArticuloResumen, error)
}

// Rentas opens a new rental on a listing.
type Rentas interface {
	Crear(ctx context.Context, req model.CrearRentaRequest) (model.Renta, error)
}

// Puntos lists the active neutral drop-off points the create form offers.
type Puntos interface {
	ListarActivos(ctx context.Context) ([]model.PuntoEntrega, error)
}

// Verificaciones resends the email-verification mail, the shortcut the
// completeness modal offers when the contact channel is the missing piece.
type Verificaciones interface {
	EnviarVerificacionEmail(ctx context.Context) error
}

// Flujo drives the two gated creation flows: publishing a listing and
// opening a rental. Both pass the payload validator, then the eligibility
// gate, and absorb the server's structured rejections on the way back.
type Flujo struct {
	log    *zap.Logger
	gate   *gate.Checker
	valida *validate.CustomValidator

	articulos      Articulos
	rentas         Rentas
	puntos         Puntos
	verificaciones Verificaciones
}

func New(log *zap.Logger, g *gate.Checker, articulos Articulos, rentas Rentas, puntos Puntos, verificaciones Verificaciones) *Flujo {
	return &Flujo{
		log:            log.Named("alta"),
		gate:           g,
		valida:         validate.NewCustomValidator(),
		articulos:      articulos,
		rentas:         rentas,
		puntos:         puntos,
		verificaciones: verificaciones,
	}
}

// PublicarArticulo runs the gated publish flow.
func (f *Flujo) PublicarArticulo(ctx context.Context, req model.CrearArticuloRequest) (model.ArticuloResumen, error) {
	if err := f.valida.Validate(req); err != nil {
		return model.ArticuloResumen{}, errs.Validation(err.Error())
	}
	if err := f.gate.Permitir(ctx, gate.AccionPublicar); err != nil {
		return model.ArticuloResumen{}, err
	}

	art, err := f.articulos.Crear(ctx, req)
	if err != nil {
		f.gate.Absorber(gate.AccionPublicar, err)
		return model.ArticuloResumen{}, err
	}
	f.log.Info("artículo publicado", zap.Int64("articulo", art.IDArticulo))
	return art, nil
}

// CrearRenta runs the gated rental-creation flow.
func (f *Flujo) CrearRenta(ctx context.Context, req model.CrearRentaRequest) (model.Renta, error) {
	if err := f.valida.Validate(req); err != nil {
		return model.Renta{}, errs.Validation(err.Error())
	}
	if err := f.gate.Permitir(ctx, gate.AccionCrearRenta); err != nil {
		return model.Renta{}, err
	}

	r, err := f.rentas.Crear(ctx, req)
	if err != nil {
		f.gate.Absorber(gate.AccionCrearRenta, err)
		return model.Renta{}, err
	}
	f.log.Info("renta creada", zap.Int64("renta", r.RentaID()))
	return r, nil
}

// PuntosDisponibles loads the drop-off points for the create form.
func (f *Flujo) PuntosDisponibles(ctx context.Context) ([]model.PuntoEntrega, error) {
	return f.puntos.ListarActivos(ctx)
}

// ReenviarVerificacion asks the server to resend the verification mail.
func (f *Flujo) ReenviarVerificacion(ctx context.Context) error {
	return f.verificaciones.EnviarVerificacionEmail(ctx)
}
