package authority

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdvisoryLock elects the authoritative process with a PostgreSQL
// session-level advisory lock. The lock lives as long as the connection that
// took it, so the connection is held out of the pool while authoritative.
type AdvisoryLock struct {
	notifier

	pool  *pgxpool.Pool
	key   int64
	retry time.Duration

	conn *pgxpool.Conn
}

// NewAdvisoryLock creates advisory lock elector
func NewAdvisoryLock(pool *pgxpool.Pool, key int64, retry time.Duration, listeners ...Listener) *AdvisoryLock {
	return &AdvisoryLock{
		notifier: notifier{listeners: listeners},
		pool:     pool,
		key:      key,
		retry:    retry,
	}
}

// Start tries to take the lock every retry interval and checks a held lock
// is still alive (blocks until context is canceled).
func (a *AdvisoryLock) Start(ctx context.Context) error {
	ticker := time.NewTicker(a.retry)
	defer ticker.Stop()

	slog.Info("advisory lock elector started", "key", a.key, "retry", a.retry)

	for {
		a.step(ctx)

		select {
		case <-ctx.Done():
			a.release()
			slog.Info("advisory lock elector stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *AdvisoryLock) step(ctx context.Context) {
	if a.conn == nil {
		acquired, err := a.tryAcquire(ctx)
		if err != nil {
			slog.Warn("acquiring advisory lock", "key", a.key, "error", err)
			return
		}
		if acquired {
			a.gain()
		}
		return
	}

	if err := a.conn.Ping(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("advisory lock connection lost", "key", a.key, "error", err)
		// session is gone and so is the lock; close instead of returning to pool
		_ = a.conn.Conn().Close(context.Background())
		a.conn.Release()
		a.conn = nil
		a.lose()
	}
}

func (a *AdvisoryLock) tryAcquire(ctx context.Context) (bool, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquiring connection: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, a.key).Scan(&locked); err != nil {
		conn.Release()
		return false, fmt.Errorf("trying advisory lock %d: %w", a.key, err)
	}
	if !locked {
		conn.Release()
		return false, nil
	}

	a.conn = conn
	return true, nil
}

func (a *AdvisoryLock) release() {
	if a.conn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := a.conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, a.key); err != nil {
		slog.Warn("releasing advisory lock", "key", a.key, "error", err)
		_ = a.conn.Conn().Close(ctx)
	}
	a.conn.Release()
	a.conn = nil
	a.lose()
}
