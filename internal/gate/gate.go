package gate

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/model"
)

// Accion names the flows the gate protects.
type Accion string

const (
	AccionPublicar   Accion = "publicar"
	AccionCrearRenta Accion = "crear_renta"
)

// Field names of the completeness check, spelled as the server spells them
// in the PROFILE_INCOMPLETE payload.
const (
	FaltaCorreoVerificado = "correo_verificado"
	FaltaTelefono         = "telefono"
	FaltaUbicacion        = "ubicacion"
)

// ProfileSource loads the authenticated profile.
type ProfileSource interface {
	Me(ctx context.Context) (model.Me, error)
}

// Modal opens the blocking completeness dialog naming the missing fields.
type Modal interface {
	Abrir(missing []string)
}

// Checker runs the pre-flight eligibility check before publish/create flows
// and absorbs the server's structured rejections. The pre-flight is a UX
// shortcut only; the server stays authoritative and its missing list always
// replaces the locally computed one.
type Checker struct {
	log      *zap.Logger
	perfiles ProfileSource
	modal    Modal
	esAdmin  func() bool

	mu         sync.Mutex
	bloqueadas map[Accion]bool
}

func New(log *zap.Logger, perfiles ProfileSource, modal Modal, esAdmin func() bool) *Checker {
	return &Checker{
		log:        log.Named("gate"),
		perfiles:   perfiles,
		modal:      modal,
		esAdmin:    esAdmin,
		bloqueadas: make(map[Accion]bool),
	}
}

// Bloqueada reports whether accion was disabled for the session after an
// ADMIN_FORBIDDEN rejection.
func (c *Checker) Bloqueada(accion Accion) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bloqueadas[accion]
}

// Permitir runs the pre-flight. An admin viewer is rejected outright; an
// incomplete profile opens the modal and rejects; a profile fetch failure
// lets the action through so the server can decide.
func (c *Checker) Permitir(ctx context.Context, accion Accion) error {
	if c.esAdmin != nil && c.esAdmin() {
		return &errs.Error{Kind: errs.KindAdminForbidden, Message: "Los administradores no pueden realizar esta acción."}
	}
	if c.Bloqueada(accion) {
		return &errs.Error{Kind: errs.KindAdminForbidden, Message: "Esta acción está deshabilitada para tu sesión."}
	}

	me, err := c.perfiles.Me(ctx)
	if err != nil {
		c.log.Warn("perfil no disponible, se delega al servidor", zap.String("accion", string(accion)), zap.Error(err))
		return nil
	}

	if missing := Faltantes(me); len(missing) > 0 {
		c.modal.Abrir(missing)
		return &errs.Error{Kind: errs.KindEligibility, Missing: missing, Message: "Completa tu perfil para continuar."}
	}
	return nil
}

// Absorber handles a server-side rejection of accion. Eligibility reopens
// the modal with the server's missing list; ADMIN_FORBIDDEN disables the
// action for the rest of the session. Returns true when the error was
// consumed here.
func (c *Checker) Absorber(accion Accion, err error) bool {
	ae, ok := errs.As(err)
	if !ok {
		return false
	}

	switch ae.Kind {
	case errs.KindEligibility:
		c.modal.Abrir(ae.Missing)
		return true

	case errs.KindAdminForbidden:
		c.mu.Lock()
		c.bloqueadas[accion] = true
		c.mu.Unlock()
		c.log.Info("acción deshabilitada para la sesión", zap.String("accion", string(accion)))
		return true
	}
	return false
}

// Faltantes computes the locally visible missing fields of the completeness
// triple: verified contact channel, phone, full location.
func Faltantes(me model.Me) []string {
	var missing []string

	verificado := me.Verificado
	if me.EmailVerificado != nil {
		verificado = *me.EmailVerificado
	}
	if !verificado {
		missing = append(missing, FaltaCorreoVerificado)
	}

	if me.Telefono == nil || strings.TrimSpace(*me.Telefono) == "" {
		missing = append(missing, FaltaTelefono)
	}

	if vacio(me.Ciudad) || vacio(me.Estado) || vacio(me.Pais) {
		missing = append(missing, FaltaUbicacion)
	}
	return missing
}

func vacio(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
