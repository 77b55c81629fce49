package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/store/memory"
	"github.com/MichaelReichel/clock2doc/internal/store/sqlite"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{Driver: "memory"})
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := s.(*memory.Store); !ok {
		t.Errorf("Open(memory) = %T", s)
	}

	path := filepath.Join(t.TempDir(), "nested", "c2d.db")
	s, err = Open(ctx, config.StorageConfig{Driver: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*sqlite.Store); !ok {
		t.Errorf("Open(sqlite) = %T", s)
	}

	if _, err := Open(ctx, config.StorageConfig{Driver: "mysql"}); err == nil {
		t.Error("Open(mysql) expected error")
	}
}
