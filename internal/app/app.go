package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/config"
	"github.com/mercadorenta/rentas-client/internal/auth"
	"github.com/mercadorenta/rentas-client/internal/executor"
	"github.com/mercadorenta/rentas-client/internal/inbox"
	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/poll"
	"github.com/mercadorenta/rentas-client/internal/renta"
	"github.com/mercadorenta/rentas-client/internal/resumen"
	notifsvc "github.com/mercadorenta/rentas-client/internal/service/notificacion"
	rentasvc "github.com/mercadorenta/rentas-client/internal/service/renta"
	"github.com/mercadorenta/rentas-client/internal/service/usuario"
	"github.com/mercadorenta/rentas-client/pkg/logger"
)

const perPage = 20

// Run wires the client together and prints the rentals inbox: sign in (or
// take a token from RENTAS_TOKEN), refresh the unread badge and list the
// three tabs with their compact timelines.
func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "rentas-client")
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tokens := auth.NewTokenStore(os.Getenv("RENTAS_TOKEN"))
	usuarios := usuario.NewService(log, cfg, tokens)

	if !tokens.HasToken() {
		correo, contrasena := os.Getenv("RENTAS_CORREO"), os.Getenv("RENTAS_CONTRASENA")
		if correo == "" {
			log.Fatal("sin credenciales: define RENTAS_TOKEN o RENTAS_CORREO/RENTAS_CONTRASENA")
		}
		login, err := usuarios.Login(ctx, correo, contrasena)
		if err != nil {
			log.Fatal("login", zap.Error(err))
		}
		tokens.Set(login.AccessToken)
	}

	me, err := usuarios.Me(ctx)
	if err != nil {
		log.Fatal("perfil", zap.Error(err))
	}
	log.Info("sesión iniciada", zap.Int64("usuario", me.ID), zap.String("correo", me.CorreoElectronico))

	rentas := rentasvc.NewService(log, cfg, tokens)
	notificaciones := notifsvc.NewService(log, cfg, tokens)

	badge := poll.NewBadgePoller(log, cfg.Poll.BadgeInterval, rentas.ChatUnreadTotal, notificaciones.UnreadCount, tokens.HasToken)
	badge.RefreshOnce(ctx)
	fmt.Printf("mensajes sin leer: %d\n\n", badge.Valor())

	ib := inbox.New(log, rentas, perPage)
	for _, tab := range []inbox.Tab{inbox.TabDuenoActivas, inbox.TabArrendatarioActivas, inbox.TabHistorial} {
		pag, err := ib.Cargar(ctx, tab, 1)
		if err != nil {
			log.Error("listado", zap.String("tab", string(tab)), zap.Error(err))
			continue
		}
		imprimir(tab, pag)
	}

	// RENTAS_RENTA_ID switches to the detail view of one rental
	if raw := os.Getenv("RENTAS_RENTA_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatal("RENTAS_RENTA_ID inválido", zap.String("valor", raw))
		}
		detalle(ctx, log, cfg, rentas, badge, tokens, id)
	}
}

func detalle(ctx context.Context, log *zap.Logger, cfg config.Config, rentas *rentasvc.Service, badge *poll.BadgePoller, tokens *auth.TokenStore, id int64) {
	viewer := renta.Viewer{UserID: tokens.UserID(), Admin: tokens.IsAdmin()}
	exec := executor.New(log, rentas, consola{}, consola{}, badge)

	ses := resumen.NewSession(log, rentas, exec, consola{}, viewer,
		resumen.Config{ChatInterval: cfg.Poll.ChatInterval, ChatSendBurst: cfg.Poll.ChatSendBurst},
		func(msgs []model.ChatMessage) {
			for _, m := range msgs {
				fmt.Printf("  chat %d: %s\n", m.IDEmisor, m.Mensaje)
			}
		})
	defer ses.Cerrar()

	if err := ses.Cargar(ctx, id); err != nil {
		log.Fatal("detalle", zap.Int64("renta", id), zap.Error(err))
	}

	r := ses.Renta()
	fmt.Printf("== renta %d (%s) ==\n", r.RentaID(), r.EstadoRenta)
	fmt.Printf("rol: %v  total: %.2f  depósito: %.2f\n", viewer.Rol(r), r.Total(), r.Deposito())
	for _, paso := range ses.HistorialTimeline() {
		f := ""
		if paso.Fecha != nil {
			f = " " + *paso.Fecha
		}
		fmt.Printf("  [%-7s] %s%s\n", paso.Status, paso.Label, f)
	}

	p := ses.Permisos()
	fmt.Printf("acciones: pagar=%t confirmar=%t en-uso=%t devolver=%t finalizar=%t cancelar=%t chat=%t\n",
		p.PagarAhora, p.ConfirmarEntrega, p.MarcarEnUso, p.Devolver, p.Finalizar, p.Cancelar, p.EnviarChat)
}

// consola is the CLI stand-in for the browser's toasts and router.
type consola struct{}

func (consola) Success(msg string) { fmt.Println("✔", msg) }
func (consola) Info(msg string)    { fmt.Println("ℹ", msg) }
func (consola) Error(msg string)   { fmt.Println("✘", msg) }
func (consola) ToLogin()           { fmt.Println("sesión expirada, vuelve a iniciar sesión") }

func imprimir(tab inbox.Tab, pag inbox.Pagina) {
	fmt.Printf("== %s (%d) ==\n", tab, pag.Total)
	for _, it := range pag.Items {
		fmt.Printf("  renta %d  %-14s  sin leer: %d\n", it.IDRenta, it.Estado, it.Unread)
		for _, paso := range it.Mini {
			marca := " "
			if paso.Done {
				marca = "x"
			}
			f := ""
			if paso.Fecha != nil {
				f = " " + *paso.Fecha
			}
			fmt.Printf("    [%s] %s%s\n", marca, paso.Label, f)
		}
	}
	fmt.Println()
}
