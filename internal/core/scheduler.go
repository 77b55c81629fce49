package core

// scheduler.go runs background maintenance.
//
// Drafts are working copies, not records. The sweeper deletes drafts that
// have not been touched within the configured TTL so abandoned imports do
// not pile up. A failed sweep is logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// SweepConfig holds configuration for the draft sweeper.
type SweepConfig struct {
	TTL      time.Duration // Drafts idle longer than this are deleted (default: 168h)
	Interval time.Duration // How often to sweep (default: 1h)
}

// StartDraftSweeper deletes expired drafts immediately and then every
// Interval until ctx is cancelled.
func (s *Service) StartDraftSweeper(ctx context.Context, cfg SweepConfig) {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}

	slog.Info("draft sweeper started", "ttl", cfg.TTL, "interval", cfg.Interval)

	s.sweepDrafts(ctx, cfg.TTL)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("draft sweeper stopped")
			return
		case <-ticker.C:
			s.sweepDrafts(ctx, cfg.TTL)
		}
	}
}

// sweepDrafts performs one sweep and returns the number of deleted drafts.
func (s *Service) sweepDrafts(ctx context.Context, ttl time.Duration) int64 {
	start := time.Now()
	cutoff := s.now().Add(-ttl)

	deleted, err := s.store.DeleteDraftsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("draft sweep failed", "error", err)
		return 0
	}

	slog.Info("draft sweep completed",
		"drafts_deleted", deleted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return deleted
}
