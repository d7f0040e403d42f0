package flags

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Syncer periodically copies flags from a Source into a Store.
// A failed load keeps the previous snapshot.
type Syncer struct {
	source   Source
	store    *Store
	interval time.Duration
}

// NewSyncer creates flag syncer
func NewSyncer(source Source, store *Store, interval time.Duration) *Syncer {
	return &Syncer{
		source:   source,
		store:    store,
		interval: interval,
	}
}

// SyncOnce loads flags from source and replaces the store snapshot.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	values, err := s.source.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading worker flags: %w", err)
	}

	if s.store.Replace(values) {
		slog.Info("worker flags updated", "count", len(values))
	}
	return nil
}

// Start syncs immediately and then every interval (blocks until context is canceled)
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.SyncOnce(ctx); err != nil {
		slog.Warn("initial worker flag sync failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("worker flag syncer started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker flag syncer stopping")
			return ctx.Err()

		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				slog.Warn("worker flag sync failed", "error", err)
			}
		}
	}
}
