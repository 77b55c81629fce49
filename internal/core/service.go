package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/csvparse"
	"github.com/MichaelReichel/clock2doc/internal/logging"
	"github.com/google/uuid"
)

// ServiceConfig holds the tunables of a Service.
type ServiceConfig struct {
	MaxFileSize          int64         // Largest accepted export in bytes (0 = unlimited)
	MaxConcurrentImports int           // Parallel imports (default: 5)
	ImportWait           time.Duration // How long an import waits for a slot
	ImportTimeout        time.Duration // Upper bound for one import including storage
	Details              DetailsDefaults
}

// Service turns uploaded exports into invoice drafts and manages them.
type Service struct {
	store      DraftStore
	summarizer Summarizer
	limiter    *ImportLimiter
	cfg        ServiceConfig
	now        func() time.Time

	// mu serializes read-modify-write cycles on drafts.
	mu sync.Mutex
}

// NewService creates a Service. A nil summarizer always yields FallbackSummary.
func NewService(store DraftStore, summarizer Summarizer, cfg ServiceConfig) *Service {
	return &Service{
		store:      store,
		summarizer: summarizer,
		limiter:    NewImportLimiter(cfg.MaxConcurrentImports, cfg.ImportWait),
		cfg:        cfg,
		now:        time.Now,
	}
}

// BuildPreview runs text through the whole pipeline: parse, detect the
// export format, normalize, aggregate and price unpriced items at
// hourlyRate.
func BuildPreview(fileName, text string, hourlyRate float64) *Preview {
	rows := csvparse.Parse(text)

	format := Clockify
	if len(rows) > 0 {
		format, _ = DetectFormat(rows[0])
	}

	res := NormalizeFormat(rows, format)
	items := WithFallbackRate(Aggregate(res.Entries), hourlyRate)

	return &Preview{
		FileName: fileName,
		Entries:  res.Entries,
		Items:    items,
		Report:   res.Report,
	}
}

// Formats lists the registered export formats.
func (s *Service) Formats() []FormatInfo {
	all := Formats()
	infos := make([]FormatInfo, len(all))
	for i, f := range all {
		infos[i] = f.Info()
	}
	return infos
}

// Preview reads an export and returns what importing it would produce.
// Nothing is stored.
func (s *Service) Preview(ctx context.Context, fileName string, r io.Reader, size int64) (*Preview, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	text, err := s.readExport(r)
	if err != nil {
		return nil, err
	}

	p := BuildPreview(fileName, text, s.cfg.Details.HourlyRate)

	logging.FromContext(ctx).Debug("export previewed",
		"file", fileName,
		"bytes", size,
		"format", p.Report.Format,
		"entries", p.Report.Entries,
		"items", len(p.Items),
	)
	return p, nil
}

// Import reads an export and stores it as a new draft with default invoice
// details. An export without usable entries still produces a draft; its
// report tells the caller why it is empty.
func (s *Service) Import(ctx context.Context, fileName string, r io.Reader, size int64) (*Draft, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.cfg.ImportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ImportTimeout)
		defer cancel()
	}

	text, err := s.readExport(r)
	if err != nil {
		return nil, err
	}

	p := BuildPreview(fileName, text, s.cfg.Details.HourlyRate)
	now := s.now()

	draft := &Draft{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Entries:   p.Entries,
		Items:     p.Items,
		Details:   NewDetails(now, s.cfg.Details),
		Report:    p.Report,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	logging.WithFields(ctx, "draft_id", draft.ID).Info("export imported",
		"file", fileName,
		"bytes", size,
		"format", p.Report.Format,
		"rows", p.Report.Rows,
		"entries", p.Report.Entries,
		"skipped", p.Report.Skipped,
		"items", len(p.Items),
	)
	return draft, nil
}

// readExport reads r as text, enforcing the size limit.
func (s *Service) readExport(r io.Reader) (string, error) {
	text, err := csvparse.ReadText(r, s.cfg.MaxFileSize)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyFile
	}
	return text, nil
}

// Draft returns the draft with the given id.
func (s *Service) Draft(ctx context.Context, id string) (*Draft, error) {
	d, err := s.store.GetDraft(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get draft %s: %w", id, err)
	}
	return d, nil
}

// Entries returns the normalized entries behind a draft.
func (s *Service) Entries(ctx context.Context, id string) ([]TimeEntry, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Entries, nil
}

// DeleteDraft removes a draft.
func (s *Service) DeleteDraft(ctx context.Context, id string) error {
	if err := s.store.DeleteDraft(ctx, id); err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	logging.WithFields(ctx, "draft_id", id).Info("draft deleted")
	return nil
}

// UpdateDetails applies a partial update to a draft's invoice details.
func (s *Service) UpdateDetails(ctx context.Context, id string, patch DetailsPatch) (*Draft, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(d *Draft) error {
		d.Details = patch.Apply(d.Details)
		return nil
	})
}

// ApplyGlobalRate prices every line item at one hourly rate. A nil rate uses
// the draft's current hourly rate; otherwise the rate also becomes the
// draft's hourly rate.
func (s *Service) ApplyGlobalRate(ctx context.Context, id string, rate *float64) (*Draft, error) {
	if rate != nil && *rate < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, *rate)
	}

	return s.mutate(ctx, id, func(d *Draft) error {
		if rate != nil {
			d.Details.HourlyRate = *rate
		}
		d.Items = ApplyRate(d.Items, d.Details.HourlyRate)
		return nil
	})
}

// GenerateSummary writes an executive summary of the draft's entries into
// its notes. Summarizer failures fall back to FallbackSummary.
func (s *Service) GenerateSummary(ctx context.Context, id string) (*Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := Summarize(ctx, s.summarizer, d.Entries)

	return s.mutate(ctx, id, func(d *Draft) error {
		d.Details.Notes = summary
		return nil
	})
}

// Summarize asks summarizer for a summary of entries and falls back to
// FallbackSummary on error, on an empty answer or when summarizer is nil.
func Summarize(ctx context.Context, summarizer Summarizer, entries []TimeEntry) string {
	if summarizer == nil {
		return FallbackSummary
	}

	text, err := summarizer.Summarize(ctx, entries)
	if err != nil {
		logging.FromContext(ctx).Warn("summary generation failed, using fallback", "error", err)
		return FallbackSummary
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackSummary
	}
	return text
}

// mutate loads a draft, applies fn and stores the result.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Draft) error) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.GetDraft(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get draft %s: %w", id, err)
	}

	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = s.now()

	// A delete or sweep that ran since GetDraft wins; the draft stays gone.
	if err := s.store.UpdateDraft(ctx, d); err != nil {
		return nil, fmt.Errorf("update draft %s: %w", id, err)
	}
	return d, nil
}

// ImportStatus returns the import limiter state.
func (s *Service) ImportStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	status := s.limiter.Status()
	if status.Active == 0 {
		return nil
	}
	slog.Info("waiting for imports to complete", "active", status.Active)
	return s.limiter.WaitForDrain(ctx)
}
