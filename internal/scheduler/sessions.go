package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/logger"
)

const (
	// DefaultSessionIdle is how long a browse session may stay unused
	DefaultSessionIdle = 30 * time.Minute
)

// Sweeper drops idle entries. Implemented by *browse.Registry.
type Sweeper interface {
	Sweep(idle time.Duration) int
	Len() int
}

// SessionCollector handles cleanup of idle browse sessions
type SessionCollector struct {
	sessions Sweeper
	logger   logger.Logger
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(
	sessions Sweeper,
	log logger.Logger,
	interval time.Duration,
	idle time.Duration,
) *SessionCollector {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	if interval <= 0 {
		interval = idle / 6
	}

	return &SessionCollector{
		sessions: sessions,
		logger:   log,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection
func (sc *SessionCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect()
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the session collector
func (sc *SessionCollector) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
}

// Collect removes sessions idle for longer than the threshold
func (sc *SessionCollector) Collect() int {
	removed := sc.sessions.Sweep(sc.idle)
	if removed > 0 {
		sc.logger.Info("idle browse sessions collected",
			logger.Int("removed", removed),
			logger.Int("remaining", sc.sessions.Len()))
	} else {
		sc.logger.Debug("no idle browse sessions to collect")
	}
	return removed
}
