package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trezcool/professor/core"
)

const (
	DefaultMaxAge        = 24 * time.Hour
	DefaultSweepInterval = time.Hour
)

// Sweeper periodically evicts the sessions of a Store that outlived maxAge.
type Sweeper struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration
	logger   core.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewSweeper(store *Store, maxAge, interval time.Duration, logger core.Logger) *Sweeper {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{store: store, maxAge: maxAge, interval: interval, logger: logger}
}

// Start launches the sweep loop. Starting a running sweeper is a no-op.
func (sw *Sweeper) Start(ctx context.Context) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.running {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	sw.cancel = cancel
	sw.done = make(chan struct{})
	sw.running = true

	go sw.run(ctx)
	return nil
}

// Stop cancels the loop and waits for it to return.
func (sw *Sweeper) Stop() {
	sw.mu.Lock()
	if !sw.running {
		sw.mu.Unlock()
		return
	}
	cancel, done := sw.cancel, sw.done
	sw.mu.Unlock()

	cancel()
	<-done
}

func (sw *Sweeper) IsRunning() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.running
}

// Sweep runs a single eviction pass and returns the number of removed sessions.
func (sw *Sweeper) Sweep() int {
	removed := sw.store.SweepExpired(sw.maxAge, nowFunc().UTC())
	if removed > 0 {
		sw.logger.Info(fmt.Sprintf("swept %d expired session(s)", removed), map[string]interface{}{
			"remaining": sw.store.Len(),
		})
	}
	return removed
}

func (sw *Sweeper) run(ctx context.Context) {
	defer func() {
		sw.mu.Lock()
		sw.running = false
		close(sw.done)
		sw.mu.Unlock()
	}()

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sw.logger.Debug("session sweeper stopping")
			return
		case <-ticker.C:
			sw.Sweep()
		}
	}
}
