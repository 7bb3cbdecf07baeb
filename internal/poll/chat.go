package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/model"
	"github.com/mercadorenta/rentas-client/pkg/breaker"
)

// ChatFetcher loads the message list for the rental the view is showing.
type ChatFetcher func(ctx context.Context) ([]model.ChatMessage, error)

// ChatPoller drives the chat view refresh: an immediate fetch on Start, then
// one fetch per interval on a single goroutine, so ticks never overlap. Stop
// tears the goroutine down and guarantees no callback fires afterwards.
type ChatPoller struct {
	log      *zap.Logger
	interval time.Duration
	fetch    ChatFetcher
	entrega  func([]model.ChatMessage)
	br       *breaker.Breaker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewChatPoller(log *zap.Logger, interval time.Duration, fetch ChatFetcher, entrega func([]model.ChatMessage)) *ChatPoller {
	return &ChatPoller{
		log:      log.Named("poll.chat"),
		interval: interval,
		fetch:    fetch,
		entrega:  entrega,
		br:       breaker.New(5, 30*time.Second, 0.6, 2),
	}
}

// Start launches the loop. Calling it while already running is a no-op.
func (p *ChatPoller) Start(ctx context.Context) {
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

// Stop cancels the loop and waits for it to exit, so the caller knows no
// further delivery will happen once Stop returns. Safe to call twice.
func (p *ChatPoller) Stop() {
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

// Activa reports whether the loop is currently running.
func (p *ChatPoller) Activa() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *ChatPoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.tick(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.tick(ctx)
		}
	}
}

func (p *ChatPoller) tick(ctx context.Context) {
	var msgs []model.ChatMessage
	err := p.br.Call(func() error {
		var ferr error
		msgs, ferr = p.fetch(ctx)
		return ferr
	})
	if err != nil {
		if err != breaker.ErrOpen && ctx.Err() == nil {
			p.log.Debug("fetch de chat falló", zap.Error(err))
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.entrega(msgs)
}
