// Package summary writes executive summaries of invoiced work.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxTaskDescriptions bounds how many entry descriptions go into a prompt.
const maxTaskDescriptions = 10

// BuildPrompt describes entries to the model: the projects involved, the
// total hours and a sample of the work.
func BuildPrompt(entries []core.TimeEntry) string {
	var projects []string
	seen := make(map[string]bool)
	var hours float64
	for _, e := range entries {
		if !seen[e.Project] {
			seen[e.Project] = true
			projects = append(projects, e.Project)
		}
		hours += e.DurationDecimal
	}

	var tasks []string
	for i, e := range entries {
		if i == maxTaskDescriptions {
			break
		}
		if e.Description != "" {
			tasks = append(tasks, e.Description)
		}
	}

	var b strings.Builder
	b.WriteString("Generate a professional 2-3 sentence executive summary for a client invoice.\n")
	fmt.Fprintf(&b, "Projects involved: %s.\n", strings.Join(projects, ", "))
	fmt.Fprintf(&b, "Total billable hours: %.2f.\n", hours)
	fmt.Fprintf(&b, "Key tasks performed: %s.\n", strings.Join(tasks, ", "))
	b.WriteString("The tone should be professional, appreciative, and concise. Do not use placeholders like [Name].")
	return b.String()
}

// Static always answers with core.FallbackSummary.
type Static struct{}

// Summarize implements core.Summarizer.
func (Static) Summarize(context.Context, []core.TimeEntry) (string, error) {
	return core.FallbackSummary, nil
}

// Anthropic generates summaries with the Anthropic Messages API.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewAnthropic creates a summarizer. Extra options are passed to the API
// client.
func NewAnthropic(cfg config.SummaryConfig, opts ...option.RequestOption) *Anthropic {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
	}
}

// Summarize implements core.Summarizer.
func (a *Anthropic) Summarize(ctx context.Context, entries []core.TimeEntry) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(entries))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("anthropic: no text content in response")
}

// New returns the summarizer described by cfg: Anthropic when an API key is
// configured, Static otherwise.
func New(cfg config.SummaryConfig) core.Summarizer {
	if cfg.APIKey == "" {
		return Static{}
	}
	return NewAnthropic(cfg)
}
