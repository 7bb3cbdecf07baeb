package inbox

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/internal/renta"
)

// Tab selects which slice of the listing the screen shows.
type Tab string

const (
	TabDuenoActivas        Tab = "dueno_activas"
	TabArrendatarioActivas Tab = "arrendatario_activas"
	TabHistorial           Tab = "historial"
)

// RolDueno / RolArrendatario are the wire spellings of the listing role
// filter; the history tab switches between them.
const (
	RolDueno        = "dueno"
	RolArrendatario = "arrendatario"
)

// Listado is the slice of the rentals service the inbox consumes.
type Listado interface {
	Mias(ctx context.Context, rol, estado string, page, perPage int) (model.InboxPage, error)
	ChatUnreadCount(ctx context.Context, id int64) (int, error)
}

// Item is one inbox row enriched with what the screen renders per rental.
type Item struct {
	model.InboxItem
	Unread    int
	Mini      []renta.Paso
	Historial []renta.PasoHistorial
}

type Pagina struct {
	Items   []Item
	Page    int
	PerPage int
	Total   int
}

// Inbox drives the three-tab rentals listing: active-as-owner, active-as-
// renter and history, each a paged server query plus a concurrent unread
// fan-out over the returned rows.
type Inbox struct {
	log     *zap.Logger
	api     Listado
	perPage int

	rolHistorial string
}

func New(log *zap.Logger, api Listado, perPage int) *Inbox {
	return &Inbox{
		log:          log.Named("inbox"),
		api:          api,
		perPage:      perPage,
		rolHistorial: RolArrendatario,
	}
}

// RolHistorial returns the role the history tab is currently filtered by.
func (i *Inbox) RolHistorial() string { return i.rolHistorial }

// CambiarRolHistorial flips the history tab between the two roles; unknown
// values are ignored.
func (i *Inbox) CambiarRolHistorial(rol string) {
	if rol == RolDueno || rol == RolArrendatario {
		i.rolHistorial = rol
	}
}

// Cargar fetches one page of the given tab and projects every row.
func (i *Inbox) Cargar(ctx context.Context, tab Tab, page int) (Pagina, error) {
	rol, estado := i.filtros(tab)

	resp, err := i.api.Mias(ctx, rol, estado, page, i.perPage)
	if err != nil {
		return Pagina{}, errors.Wrap(err, "listado de rentas")
	}

	items := make([]Item, len(resp.Items))
	for n := range resp.Items {
		c := renta.DeInboxItem(&resp.Items[n])
		items[n] = Item{
			InboxItem: resp.Items[n],
			Mini:      renta.MiniTimeline(c),
			Historial: renta.HistorialTimeline(c),
		}
	}

	i.unreadFanOut(ctx, items)

	return Pagina{
		Items:   items,
		Page:    resp.Page,
		PerPage: resp.PerPage,
		Total:   resp.Total,
	}, nil
}

func (i *Inbox) filtros(tab Tab) (rol, estado string) {
	switch tab {
	case TabDuenoActivas:
		return RolDueno, "activas"
	case TabArrendatarioActivas:
		return RolArrendatario, "activas"
	case TabHistorial:
		return i.rolHistorial, "historial"
	default:
		return RolArrendatario, "activas"
	}
}

// unreadFanOut fills the per-row unread counters concurrently. A failed
// count leaves its row at zero; the listing never fails because of badges.
func (i *Inbox) unreadFanOut(ctx context.Context, items []Item) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for n := range items {
		n := n
		g.Go(func() error {
			unread, err := i.api.ChatUnreadCount(ctx, items[n].IDRenta)
			if err != nil {
				i.log.Debug("conteo de no leídos falló", zap.Int64("renta", items[n].IDRenta), zap.Error(err))
				return nil
			}
			items[n].Unread = unread
			return nil
		})
	}
	_ = g.Wait()
}
