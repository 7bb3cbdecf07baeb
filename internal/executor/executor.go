package executor

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=executor.go -destination=mocks/mock.go

// RentaFetcher re-loads the rental after a call settles.
type RentaFetcher interface {
	Obtener(ctx context.Context, id int64) (model.Renta, error)
}

// Notifier is the toast sink.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Navigator redirects to the authentication entry point.
type Navigator interface {
	ToLogin()
}

// BadgeRefresher nudges the unread indicator; strictly best-effort.
type BadgeRefresher interface {
	RefreshOnce(ctx context.Context)
}

// ErrEnCurso: another action on this executor is still in flight; the
// trigger was dropped, not queued.
var ErrEnCurso = errors.New("acción en curso")

const (
	msgSinPermiso   = "No tienes permiso para realizar esta acción."
	msgGenerico     = "No se pudo completar la acción."
	msgEstadoCambio = "La renta ya cambió de estado, se recargará."
)

// Executor serializes state-changing calls against one rental and applies
// the uniform outcome handling: refresh on settle, silent recovery on
// conflict, login redirect only when no credential is held.
type Executor struct {
	log    *zap.Logger
	rentas RentaFetcher
	notify Notifier
	nav    Navigator
	badge  BadgeRefresher

	busy atomic.Bool
}

func New(log *zap.Logger, rentas RentaFetcher, notify Notifier, nav Navigator, badge BadgeRefresher) *Executor {
	return &Executor{
		log:    log,
		rentas: rentas,
		notify: notify,
		nav:    nav,
		badge:  badge,
	}
}

// EnCurso reports whether an action is currently in flight. Permission
// evaluation takes it as the processing flag.
func (e *Executor) EnCurso() bool {
	return e.busy.Load()
}

// Run executes one state-changing call. On success and on conflict the
// rental is re-fetched and returned; every other failure is surfaced
// through the notifier and returned as the classified error with no record
// change. A second trigger while one is pending returns ErrEnCurso without
// touching the network.
//
// Note: a call that never settles keeps the guard engaged. No client-side
// timeout is modeled beyond the transport's own.
func (e *Executor) Run(ctx context.Context, rentaID int64, call func(ctx context.Context) error, successMsg string) (*model.Renta, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrEnCurso
	}
	defer e.busy.Store(false)

	if err := call(ctx); err != nil {
		return e.settleFailure(ctx, rentaID, err)
	}

	r, err := e.refetch(ctx, rentaID)
	if err != nil {
		e.log.Warn("refresh tras acción", zap.Int64("renta", rentaID), zap.Error(err))
	}
	e.notify.Success(successMsg)
	e.badge.RefreshOnce(ctx)
	return r, nil
}

func (e *Executor) settleFailure(ctx context.Context, rentaID int64, err error) (*model.Renta, error) {
	ae, ok := errs.As(err)
	if !ok {
		e.notify.Error(msgGenerico)
		return nil, err
	}

	switch ae.Kind {
	case errs.KindStaleCredential:
		e.nav.ToLogin()
		return nil, err

	case errs.KindConflict:
		e.notify.Info(msgEstadoCambio)
		r, ferr := e.refetch(ctx, rentaID)
		if ferr != nil {
			e.log.Debug("refresh tras conflicto", zap.Int64("renta", rentaID), zap.Error(ferr))
		}
		e.badge.RefreshOnce(ctx)
		return r, nil

	case errs.KindAuthorization:
		e.notify.Error(msgSinPermiso)
		return nil, err

	case errs.KindValidation:
		// local rules normally reject before Run is reached
		e.notify.Error(ae.Message)
		return nil, err

	default:
		if ae.Message != "" {
			e.notify.Error(ae.Message)
		} else {
			e.notify.Error(msgGenerico)
		}
		return nil, err
	}
}

func (e *Executor) refetch(ctx context.Context, rentaID int64) (*model.Renta, error) {
	r, err := e.rentas.Obtener(ctx, rentaID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
