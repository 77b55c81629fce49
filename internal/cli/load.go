package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/csvparse"
)

// loadExport runs the export at path through the pipeline. Items the export
// left unpriced are priced at fallbackRate.
func loadExport(path string, fallbackRate float64) (*core.Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	text, err := csvparse.ReadText(f, 0)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, core.ErrEmptyFile)
	}

	preview := core.BuildPreview(filepath.Base(path), text, fallbackRate)
	slog.Debug("export loaded",
		"file", path,
		"format", preview.Report.Format,
		"rows", preview.Report.Rows,
		"entries", preview.Report.Entries,
		"skipped", preview.Report.Skipped,
		"missing_fields", preview.Report.MissingFields,
		"items", len(preview.Items),
	)
	return preview, nil
}
