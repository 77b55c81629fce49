// Package memory is an in-process store. It is the default backend and
// keeps nothing across restarts.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
)

// Store keeps drafts, messages and settings in maps.
// Values are copied on the way in and out so callers never share memory
// with the store.
type Store struct {
	mu       sync.RWMutex
	drafts   map[string]core.Draft
	messages map[string]core.Message
	settings map[string]string
}

var _ core.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		drafts:   make(map[string]core.Draft),
		messages: make(map[string]core.Message),
		settings: make(map[string]string),
	}
}

// SaveDraft inserts or replaces a draft.
func (s *Store) SaveDraft(_ context.Context, d *core.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = copyDraft(*d)
	return nil
}

// UpdateDraft replaces an existing draft.
func (s *Store) UpdateDraft(_ context.Context, d *core.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[d.ID]; !ok {
		return core.ErrDraftNotFound
	}
	s.drafts[d.ID] = copyDraft(*d)
	return nil
}

// GetDraft returns a copy of a draft.
func (s *Store) GetDraft(_ context.Context, id string) (*core.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, core.ErrDraftNotFound
	}
	out := copyDraft(d)
	return &out, nil
}

// DeleteDraft removes a draft.
func (s *Store) DeleteDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return core.ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}

// DeleteDraftsBefore removes drafts last updated before cutoff.
func (s *Store) DeleteDraftsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			n++
		}
	}
	return n, nil
}

// AddMessage stores a contact message.
func (s *Store) AddMessage(_ context.Context, m *core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = *m
	return nil
}

// ListMessages returns all messages, newest first.
func (s *Store) ListMessages(_ context.Context) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteMessage removes one message.
func (s *Store) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return core.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

// ClearMessages removes every message and returns how many there were.
func (s *Store) ClearMessages(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.messages))
	s.messages = make(map[string]core.Message)
	return n, nil
}

// GetSetting returns a setting and whether it exists.
func (s *Store) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

// PutSetting stores a setting.
func (s *Store) PutSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func copyDraft(d core.Draft) core.Draft {
	d.Entries = slices.Clone(d.Entries)
	d.Items = slices.Clone(d.Items)
	d.Report.MissingFields = slices.Clone(d.Report.MissingFields)
	return d
}
