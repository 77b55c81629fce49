// Package store opens the persistence backend selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/store/memory"
	"github.com/MichaelReichel/clock2doc/internal/store/postgres"
	"github.com/MichaelReichel/clock2doc/internal/store/sqlite"
)

// Open returns the store named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (core.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory":
		slog.Info("using in-memory storage, drafts are lost on restart")
		return memory.New(), nil

	case "sqlite":
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		slog.Info("sqlite storage ready", "path", cfg.SQLitePath)
		return s, nil

	case "postgres":
		s, err := postgres.Open(ctx, postgres.PoolConfig{
			URL:             cfg.URL,
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		slog.Info("postgres storage ready", "max_conns", cfg.MaxConns)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
