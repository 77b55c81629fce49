package core

import "context"

// FallbackSummary replaces a generated summary whenever generation fails or
// returns nothing.
const FallbackSummary = "Professional services rendered for the specified period."

// Summarizer writes a short executive summary of the work in entries.
type Summarizer interface {
	Summarize(ctx context.Context, entries []TimeEntry) (string, error)
}

// SummarizerFunc adapts a function to Summarizer.
type SummarizerFunc func(ctx context.Context, entries []TimeEntry) (string, error)

// Summarize calls f.
func (f SummarizerFunc) Summarize(ctx context.Context, entries []TimeEntry) (string, error) {
	return f(ctx, entries)
}
