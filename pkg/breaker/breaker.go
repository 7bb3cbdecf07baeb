package breaker

import (
	"errors"
	"sync"
	"time"
)

type state uint8

const (
	closed state = iota + 1
	open
	halfOpen
)

var ErrOpen = errors.New("breaker is open")

// Breaker is a small circuit breaker for the polling loops: after enough
// consecutive-window failures it swallows calls for a cooldown, then probes
// with a few calls before closing again.
type Breaker struct {
	mu sync.Mutex

	st       state
	window   []bool
	pos      int
	ratio    float64
	cooldown time.Duration
	openedAt time.Time

	probes     int
	probesDone int
}

func New(windowSize int, cooldown time.Duration, ratio float64, probes int) *Breaker {
	return &Breaker{
		st:       closed,
		window:   make([]bool, windowSize),
		ratio:    ratio,
		cooldown: cooldown,
		probes:   probes,
	}
}

// Call runs fn unless the breaker is open. The fn error is returned as-is;
// ErrOpen means fn was never invoked.
func (b *Breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.st == open {
		if time.Since(b.openedAt) < b.cooldown {
			b.mu.Unlock()
			return ErrOpen
		}
		b.st = halfOpen
		b.probesDone = 0
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.window[b.pos] = err != nil
	b.pos = (b.pos + 1) % len(b.window)

	if b.st == halfOpen {
		if err != nil {
			b.st = open
			b.openedAt = time.Now()
			return err
		}
		b.probesDone++
		if b.probesDone >= b.probes {
			b.reset()
		}
		return nil
	}

	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(b.window)) >= b.ratio {
		b.st = open
		b.openedAt = time.Now()
	}
	return err
}

func (b *Breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.pos = 0
	b.probesDone = 0
	b.st = closed
}
