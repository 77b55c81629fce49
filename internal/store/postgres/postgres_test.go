package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/MichaelReichel/clock2doc/internal/store/storetest"
)

// TestStore runs against TEST_DATABASE_URL and is skipped without it.
// The tables are emptied first.
func TestStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, PoolConfig{URL: url, MaxConns: 4})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if _, err := s.pool.Exec(ctx, `TRUNCATE drafts, messages, settings`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	storetest.Run(t, s)
}
