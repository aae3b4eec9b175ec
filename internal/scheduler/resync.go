package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/logger"
)

// Reloader re-reads durable state into memory. Implemented by *catalog.Catalog.
type Reloader interface {
	Reload(ctx context.Context)
}

// Resyncer reloads the catalog from the store, on a ticker and on demand.
// With interval <= 0 only the initial load and manual triggers run.
type Resyncer struct {
	target        Reloader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewResyncer creates a new resyncer
func NewResyncer(
	target Reloader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Resyncer {
	return &Resyncer{
		target:        target,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then keeps it in sync in the background
func (rs *Resyncer) Start(ctx context.Context) {
	rs.target.Reload(ctx)

	var tick <-chan time.Time
	var ticker *time.Ticker
	if rs.interval > 0 {
		ticker = time.NewTicker(rs.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick: // nil channel when periodic resync is off
				rs.logger.Debug("periodic catalog resync")
				rs.target.Reload(ctx)
			case <-rs.manualTrigger:
				rs.logger.Info("manual catalog resync triggered")
				rs.target.Reload(ctx)
			case <-rs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the resyncer
func (rs *Resyncer) Stop() {
	rs.stopOnce.Do(func() { close(rs.stopCh) })
}
