package core

import (
	"context"
	"time"
)

// DraftStore persists invoice drafts.
// GetDraft, UpdateDraft and DeleteDraft return ErrDraftNotFound for unknown
// ids. UpdateDraft never recreates a draft that was deleted.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *Draft) error
	UpdateDraft(ctx context.Context, d *Draft) error
	GetDraft(ctx context.Context, id string) (*Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MessageStore persists contact messages.
// ListMessages returns the newest message first; DeleteMessage returns
// ErrMessageNotFound for unknown ids.
type MessageStore interface {
	AddMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context) ([]Message, error)
	DeleteMessage(ctx context.Context, id string) error
	ClearMessages(ctx context.Context) (int64, error)
}

// SettingStore persists small key/value settings such as the admin secret hash.
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	PutSetting(ctx context.Context, key, value string) error
}

// Store is everything the application persists.
type Store interface {
	DraftStore
	MessageStore
	SettingStore
	Close() error
}
