// Package sqlite is a store backed by a local SQLite file. Drafts are kept
// as JSON documents; messages and settings are plain rows.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/bytedance/sonic"

	_ "modernc.org/sqlite"
)

// Store implements core.Store on SQLite.
type Store struct {
	db *sql.DB
}

var _ core.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDraft inserts or replaces a draft.
func (s *Store) SaveDraft(ctx context.Context, d *core.Draft) error {
	doc, err := sonic.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, file_name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_name = excluded.file_name,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		d.ID, d.FileName, string(doc), d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano(),
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

	res, err := s.db.ExecContext(ctx, `
		UPDATE drafts SET file_name = ?, document = ?, updated_at = ?
		WHERE id = ?`,
		d.FileName, string(doc), d.UpdatedAt.UnixNano(), d.ID,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if n == 0 {
		return core.ErrDraftNotFound
	}
	return nil
}

// GetDraft loads a draft.
func (s *Store) GetDraft(ctx context.Context, id string) (*core.Draft, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM drafts WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var d core.Draft
	if err := sonic.UnmarshalString(doc, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// DeleteDraft removes a draft.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return requireAffected(res, core.ErrDraftNotFound)
}

// DeleteDraftsBefore removes drafts last updated before cutoff.
func (s *Store) DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE updated_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete expired drafts: %w", err)
	}
	return res.RowsAffected()
}

// AddMessage stores a contact message.
func (s *Store) AddMessage(ctx context.Context, m *core.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, subject, email, description, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Subject, m.Email, m.Description, m.IPAddress, m.UserAgent, m.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

// ListMessages returns all messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]core.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, email, description, ip_address, user_agent, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]core.Message, 0)
	for rows.Next() {
		var (
			m       core.Message
			created int64
		)
		if err := rows.Scan(&m.ID, &m.Subject, &m.Email, &m.Description, &m.IPAddress, &m.UserAgent, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteMessage removes one message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return requireAffected(res, core.ErrMessageNotFound)
}

// ClearMessages removes every message.
func (s *Store) ClearMessages(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	return res.RowsAffected()
}

// GetSetting returns a setting and whether it exists.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	return value, true, nil
}

// PutSetting stores a setting.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	return nil
}

// requireAffected turns "no rows affected" into notFound.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
