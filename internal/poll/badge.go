package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/pkg/breaker"
)

// TotalFetcher loads the account-wide unread chat total.
type TotalFetcher func(ctx context.Context) (int, error)

// BadgePoller keeps the process-wide unread indicator current: one writer
// goroutine polling at a fixed interval, plus on-demand refreshes after
// actions. Readers observe it through Subscribe, which replays the latest
// value on attach.
type BadgePoller struct {
	log      *zap.Logger
	interval time.Duration
	total    TotalFetcher
	fallback TotalFetcher
	auth     func() bool
	br       *breaker.Breaker

	mu     sync.Mutex
	valor  int
	subs   []chan int
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBadgePoller builds the poller. fallback may be nil; when set it is
// consulted after a failed total fetch (the notification count endpoint
// predates the chat total and stays available longer).
func NewBadgePoller(log *zap.Logger, interval time.Duration, total, fallback TotalFetcher, auth func() bool) *BadgePoller {
	return &BadgePoller{
		log:      log.Named("poll.badge"),
		interval: interval,
		total:    total,
		fallback: fallback,
		auth:     auth,
		br:       breaker.New(5, time.Minute, 0.6, 2),
	}
}

// Valor returns the last published total.
func (p *BadgePoller) Valor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valor
}

// Subscribe registers a reader. The channel immediately carries the current
// value; later updates overwrite an unconsumed one instead of blocking the
// writer.
func (p *BadgePoller) Subscribe() <-chan int {
	ch := make(chan int, 1)
	p.mu.Lock()
	ch <- p.valor
	p.subs = append(p.subs, ch)
	p.mu.Unlock()
	return ch
}

// Start launches the polling loop; idempotent like the chat poller.
func (p *BadgePoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

func (p *BadgePoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RefreshOnce fetches and publishes a fresh total outside the timer. Errors
// are logged and swallowed; a stale badge never fails the action that asked
// for the refresh.
func (p *BadgePoller) RefreshOnce(ctx context.Context) {
	p.refresh(ctx)
}

func (p *BadgePoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refresh(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.refresh(ctx)
		}
	}
}

func (p *BadgePoller) refresh(ctx context.Context) {
	if p.auth != nil && !p.auth() {
		p.publish(0)
		return
	}

	var n int
	err := p.br.Call(func() error {
		var ferr error
		n, ferr = p.total(ctx)
		if ferr != nil && p.fallback != nil {
			n, ferr = p.fallback(ctx)
		}
		return ferr
	})
	if err != nil {
		if err != breaker.ErrOpen && ctx.Err() == nil {
			p.log.Debug("fetch de no leídos falló", zap.Error(err))
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.publish(n)
}

func (p *BadgePoller) publish(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valor = n
	for _, ch := range p.subs {
		select {
		case ch <- n:
		default:
			// reader has a pending value; replace it with the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}
