// Package postgres is a store backed by PostgreSQL through a pgx connection
// pool. Drafts are stored as JSONB documents.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS drafts (
    id          TEXT PRIMARY KEY,
    file_name   TEXT NOT NULL,
    document    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at);

CREATE TABLE IF NOT EXISTS messages (
    id          TEXT PRIMARY KEY,
    subject     TEXT NOT NULL,
    email       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL,
    ip_address  TEXT NOT NULL DEFAULT '',
    user_agent  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Store implements core.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.Store = (*Store)(nil)

// Open connects, verifies the connection and ensures the schema exists.
func Open(ctx context.Context, cfg PoolConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// SaveDraft inserts or replaces a draft.
func (s *Store) SaveDraft(ctx context.Context, d *core.Draft) error {
	doc, err := sonic.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO drafts (id, file_name, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`,
		d.ID, d.FileName, doc, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// UpdateDraft replaces the document of an existing draft.
func (s *Store) UpdateDraft(ctx context.Context, d *core.Draft) error {
	doc, err := sonic.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE drafts SET file_name = $1, document = $2, updated_at = $3
		WHERE id = $4`,
		d.FileName, doc, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrDraftNotFound
	}
	return nil
}

// GetDraft loads a draft.
func (s *Store) GetDraft(ctx context.Context, id string) (*core.Draft, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM drafts WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var d core.Draft
	if err := sonic.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// DeleteDraft removes a draft.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrDraftNotFound
	}
	return nil
}

// DeleteDraftsBefore removes drafts last updated before cutoff.
func (s *Store) DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM drafts WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AddMessage stores a contact message.
func (s *Store) AddMessage(ctx context.Context, m *core.Message) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, subject, email, description, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Subject, m.Email, m.Description, m.IPAddress, m.UserAgent, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

// ListMessages returns all messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]core.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, subject, email, description, ip_address, user_agent, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Message, error) {
		var m core.Message
		err := row.Scan(&m.ID, &m.Subject, &m.Email, &m.Description, &m.IPAddress, &m.UserAgent, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes one message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrMessageNotFound
	}
	return nil
}

// ClearMessages removes every message.
func (s *Store) ClearMessages(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetSetting returns a setting and whether it exists.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	return value, true, nil
}

// PutSetting stores a setting.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	return nil
}
