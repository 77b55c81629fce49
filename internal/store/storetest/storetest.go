// Package storetest holds a conformance suite every core.Store must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
)

// Run exercises s. The store must be empty.
func Run(t *testing.T, s core.Store) {
	t.Helper()

	t.Run("drafts", func(t *testing.T) { testDrafts(t, s) })
	t.Run("expiry", func(t *testing.T) { testExpiry(t, s) })
	t.Run("messages", func(t *testing.T) { testMessages(t, s) })
	t.Run("settings", func(t *testing.T) { testSettings(t, s) })
}

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleDraft(id string, updated time.Time) *core.Draft {
	return &core.Draft{
		ID:       id,
		FileName: "march.csv",
		Entries: []core.TimeEntry{
			{Project: "Website", Client: "Acme", Description: "Design", Billable: true, DurationDecimal: 1.5, BillableRate: 100, BillableAmount: 150, Currency: "USD"},
		},
		Items: []core.AggregatedItem{
			{ID: "item-1", Project: "Website", Description: "Design", Quantity: 1.5, Rate: 100, Total: 150},
		},
		Details: core.InvoiceDetails{
			InvoiceNumber: "INV-2024-1234",
			Currency:      "$",
			HourlyRate:    100,
			Notes:         "Thanks",
			Template:      core.TemplateModern,
		},
		Report:    core.ImportReport{Format: "clockify", Rows: 1, Entries: 1, MissingFields: []string{}},
		CreatedAt: base,
		UpdatedAt: updated,
	}
}

func testDrafts(t *testing.T, s core.Store) {
	ctx := context.Background()

	if _, err := s.GetDraft(ctx, "missing"); !errors.Is(err, core.ErrDraftNotFound) {
		t.Fatalf("GetDraft(missing) error = %v, want ErrDraftNotFound", err)
	}

	d := sampleDraft("d1", base)
	if err := s.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	got, err := s.GetDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDraft() error = %v", err)
	}
	if got.FileName != d.FileName || got.Details.InvoiceNumber != d.Details.InvoiceNumber {
		t.Errorf("GetDraft() = %+v", got)
	}
	if len(got.Entries) != 1 || got.Entries[0].BillableAmount != 150 {
		t.Errorf("Entries = %+v", got.Entries)
	}
	if len(got.Items) != 1 || got.Items[0].Total != 150 {
		t.Errorf("Items = %+v", got.Items)
	}
	if !got.UpdatedAt.Equal(base) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, base)
	}

	// The stored copy is not aliased to the caller's value.
	got.Items[0].Rate = 1
	again, err := s.GetDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDraft() error = %v", err)
	}
	if again.Items[0].Rate != 100 {
		t.Errorf("stored draft changed through returned value: rate = %v", again.Items[0].Rate)
	}

	// Save replaces.
	d.Details.Notes = "Updated"
	d.UpdatedAt = base.Add(time.Minute)
	if err := s.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft() replace error = %v", err)
	}
	again, _ = s.GetDraft(ctx, "d1")
	if again.Details.Notes != "Updated" {
		t.Errorf("Notes = %q, want %q", again.Details.Notes, "Updated")
	}

	d.Details.Notes = "Updated again"
	if err := s.UpdateDraft(ctx, d); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	again, _ = s.GetDraft(ctx, "d1")
	if again.Details.Notes != "Updated again" {
		t.Errorf("Notes = %q, want %q", again.Details.Notes, "Updated again")
	}

	if err := s.DeleteDraft(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDraft() error = %v", err)
	}
	if err := s.DeleteDraft(ctx, "d1"); !errors.Is(err, core.ErrDraftNotFound) {
		t.Errorf("DeleteDraft() twice error = %v, want ErrDraftNotFound", err)
	}

	// Updating a deleted draft must not bring it back.
	if err := s.UpdateDraft(ctx, d); !errors.Is(err, core.ErrDraftNotFound) {
		t.Errorf("UpdateDraft(deleted) error = %v, want ErrDraftNotFound", err)
	}
	if _, err := s.GetDraft(ctx, "d1"); !errors.Is(err, core.ErrDraftNotFound) {
		t.Errorf("GetDraft(deleted) error = %v, want ErrDraftNotFound", err)
	}
}

func testExpiry(t *testing.T, s core.Store) {
	ctx := context.Background()

	for _, d := range []*core.Draft{
		sampleDraft("old-1", base.Add(-48*time.Hour)),
		sampleDraft("old-2", base.Add(-25*time.Hour)),
		sampleDraft("fresh", base),
	} {
		if err := s.SaveDraft(ctx, d); err != nil {
			t.Fatalf("SaveDraft(%s) error = %v", d.ID, err)
		}
	}

	n, err := s.DeleteDraftsBefore(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteDraftsBefore() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteDraftsBefore() = %d, want 2", n)
	}
	if _, err := s.GetDraft(ctx, "fresh"); err != nil {
		t.Errorf("fresh draft removed: %v", err)
	}
	if _, err := s.GetDraft(ctx, "old-1"); !errors.Is(err, core.ErrDraftNotFound) {
		t.Errorf("old draft kept: %v", err)
	}
	_ = s.DeleteDraft(ctx, "fresh")
}

func testMessages(t *testing.T, s core.Store) {
	ctx := context.Background()

	list, err := s.ListMessages(ctx)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("ListMessages() on empty store = %d messages", len(list))
	}

	for i, id := range []string{"m1", "m2", "m3"} {
		m := &core.Message{
			ID:          id,
			Subject:     "Subject " + id,
			Email:       id + "@example.com",
			Description: "Body",
			IPAddress:   "203.0.113.7",
			UserAgent:   "test",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.AddMessage(ctx, m); err != nil {
			t.Fatalf("AddMessage(%s) error = %v", id, err)
		}
	}

	list, err = s.ListMessages(ctx)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListMessages() = %d messages, want 3", len(list))
	}
	if list[0].ID != "m3" || list[2].ID != "m1" {
		t.Errorf("order = %s,%s,%s, want newest first", list[0].ID, list[1].ID, list[2].ID)
	}
	if list[0].Email != "m3@example.com" || list[0].IPAddress != "203.0.113.7" {
		t.Errorf("message = %+v", list[0])
	}
	if !list[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", list[2].CreatedAt, base)
	}

	if err := s.DeleteMessage(ctx, "m2"); err != nil {
		t.Fatalf("DeleteMessage() error = %v", err)
	}
	if err := s.DeleteMessage(ctx, "m2"); !errors.Is(err, core.ErrMessageNotFound) {
		t.Errorf("DeleteMessage() twice error = %v, want ErrMessageNotFound", err)
	}

	n, err := s.ClearMessages(ctx)
	if err != nil {
		t.Fatalf("ClearMessages() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ClearMessages() = %d, want 2", n)
	}
	list, _ = s.ListMessages(ctx)
	if len(list) != 0 {
		t.Errorf("ListMessages() after clear = %d messages", len(list))
	}
}

func testSettings(t *testing.T, s core.Store) {
	ctx := context.Background()

	if _, ok, err := s.GetSetting(ctx, "admin_secret_hash"); err != nil || ok {
		t.Fatalf("GetSetting(missing) = ok %v, err %v", ok, err)
	}

	if err := s.PutSetting(ctx, "admin_secret_hash", "first"); err != nil {
		t.Fatalf("PutSetting() error = %v", err)
	}
	if err := s.PutSetting(ctx, "admin_secret_hash", "second"); err != nil {
		t.Fatalf("PutSetting() overwrite error = %v", err)
	}

	v, ok, err := s.GetSetting(ctx, "admin_secret_hash")
	if err != nil || !ok {
		t.Fatalf("GetSetting() = ok %v, err %v", ok, err)
	}
	if v != "second" {
		t.Errorf("GetSetting() = %q, want %q", v, "second")
	}
}
