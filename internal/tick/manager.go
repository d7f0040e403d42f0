package tick

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is advanced once per frame with the time elapsed since the previous frame.
type Ticker interface {
	Tick(dt time.Duration)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(dt time.Duration)

// Tick calls f(dt).
func (f TickerFunc) Tick(dt time.Duration) {
	f(dt)
}

// TickManager drives registered tickers from a fixed-interval frame loop.
type TickManager struct {
	tickers     sync.Map // map[string]Ticker
	tickerCount atomic.Int32
	interval    time.Duration
}

// NewTickManager creates tick manager with given frame interval
func NewTickManager(interval time.Duration) *TickManager {
	return &TickManager{interval: interval}
}

// Register starts ticking t under name. Registering an existing name replaces it.
func (m *TickManager) Register(name string, t Ticker) {
	if _, loaded := m.tickers.Swap(name, t); !loaded {
		m.tickerCount.Add(1)
	}

	slog.Debug("ticker registered", "name", name)
}

// Unregister stops ticking name.
func (m *TickManager) Unregister(name string) {
	if _, ok := m.tickers.LoadAndDelete(name); !ok {
		return
	}
	m.tickerCount.Add(-1)

	slog.Debug("ticker unregistered", "name", name)
}

// IsRegistered reports whether name is currently ticking.
func (m *TickManager) IsRegistered(name string) bool {
	_, ok := m.tickers.Load(name)
	return ok
}

// Start runs the frame loop (blocks until context is canceled)
func (m *TickManager) Start(ctx context.Context) error {
	if m.interval <= 0 {
		return fmt.Errorf("invalid tick interval %s", m.interval)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case now := <-ticker.C:
			m.tickAll(now.Sub(last))
			last = now
		}
	}
}

func (m *TickManager) tickAll(dt time.Duration) {
	m.tickers.Range(func(_, value any) bool {
		value.(Ticker).Tick(dt)
		return true
	})
}

// Count returns number of registered tickers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.tickerCount.Load())
}
