// Package admin provides the contact inbox and the shared secret that
// guards it.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SecretHashKey is the setting that holds the bcrypt hash of a changed secret.
const SecretHashKey = "admin_secret_hash"

// MinSecretLength is the shortest accepted admin secret.
const MinSecretLength = 4

// Field limits for contact messages.
const (
	maxSubjectLength     = 200
	maxEmailLength       = 254
	maxDescriptionLength = 5000
	maxSecretLength      = 72 // bcrypt input limit
)

// Store is what the inbox persists to.
type Store interface {
	core.MessageStore
	core.SettingStore
}

// ContactForm is a submission from the public contact form.
type ContactForm struct {
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Inbox collects contact messages and checks the admin secret.
type Inbox struct {
	store  Store
	secret string // configured secret, used until one is stored
	cost   int
	now    func() time.Time
}

// NewInbox creates an inbox. secret is the configured ADMIN_SECRET; an empty
// secret locks the inbox until a hash is stored.
func NewInbox(store Store, secret string) *Inbox {
	return &Inbox{
		store:  store,
		secret: secret,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

// Submit validates and stores a contact message. The sender's IP address and
// user agent are taken from ctx.
func (i *Inbox) Submit(ctx context.Context, form ContactForm) (*core.Message, error) {
	form.Subject = strings.TrimSpace(form.Subject)
	form.Email = strings.TrimSpace(form.Email)
	form.Description = strings.TrimSpace(form.Description)

	if err := form.validate(); err != nil {
		return nil, err
	}

	m := &core.Message{
		ID:          uuid.NewString(),
		Subject:     form.Subject,
		Email:       form.Email,
		Description: form.Description,
		IPAddress:   core.IPAddressFromContext(ctx),
		UserAgent:   core.UserAgentFromContext(ctx),
		CreatedAt:   i.now().UTC(),
	}
	if err := i.store.AddMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}

	logging.WithFields(ctx, "message_id", m.ID).Info("contact message received",
		"has_email", m.Email != "",
	)
	return m, nil
}

func (f ContactForm) validate() error {
	switch {
	case f.Subject == "":
		return fmt.Errorf("%w: subject is required", core.ErrInvalidMessage)
	case f.Description == "":
		return fmt.Errorf("%w: description is required", core.ErrInvalidMessage)
	case len(f.Subject) > maxSubjectLength:
		return fmt.Errorf("%w: subject exceeds %d characters", core.ErrInvalidMessage, maxSubjectLength)
	case len(f.Description) > maxDescriptionLength:
		return fmt.Errorf("%w: description exceeds %d characters", core.ErrInvalidMessage, maxDescriptionLength)
	case f.Email != "" && (!strings.Contains(f.Email, "@") || len(f.Email) > maxEmailLength):
		return fmt.Errorf("%w: invalid email address", core.ErrInvalidMessage)
	}
	return nil
}

// List returns all messages, newest first.
func (i *Inbox) List(ctx context.Context) ([]core.Message, error) {
	return i.store.ListMessages(ctx)
}

// Delete removes one message.
func (i *Inbox) Delete(ctx context.Context, id string) error {
	if err := i.store.DeleteMessage(ctx, id); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	logging.WithFields(ctx, "message_id", id).Info("contact message deleted")
	return nil
}

// Clear removes every message and returns how many were removed.
// This is a destructive operation - use with caution.
func (i *Inbox) Clear(ctx context.Context) (int64, error) {
	n, err := i.store.ClearMessages(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	logging.FromContext(ctx).Info("inbox cleared", "messages_deleted", n)
	return n, nil
}

// Verify reports whether secret unlocks the inbox. A stored hash takes
// precedence over the configured secret.
func (i *Inbox) Verify(ctx context.Context, secret string) bool {
	hash, ok, err := i.store.GetSetting(ctx, SecretHashKey)
	if err != nil {
		slog.Error("load admin secret failed", "error", err)
		return false
	}
	if ok {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
	}

	if i.secret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(i.secret)) == 1
}

// ChangeSecret replaces the admin secret. old must verify, next must equal
// confirm and be at least MinSecretLength characters.
func (i *Inbox) ChangeSecret(ctx context.Context, old, next, confirm string) error {
	if !i.Verify(ctx, old) {
		return fmt.Errorf("%w: current secret is incorrect", core.ErrUnauthorized)
	}
	if next != confirm {
		return fmt.Errorf("%w: secrets do not match", core.ErrInvalidSecret)
	}
	if len(next) < MinSecretLength {
		return fmt.Errorf("%w: must be at least %d characters", core.ErrInvalidSecret, MinSecretLength)
	}
	if len(next) > maxSecretLength {
		return fmt.Errorf("%w: must be at most %d bytes", core.ErrInvalidSecret, maxSecretLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), i.cost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	if err := i.store.PutSetting(ctx, SecretHashKey, string(hash)); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}

	logging.FromContext(ctx).Info("admin secret changed")
	return nil
}
