package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/render"
	"github.com/MichaelReichel/clock2doc/internal/summary"
	"github.com/spf13/cobra"
)

// newSummarizer builds the summarizer for --summary from the SUMMARY_* and
// ANTHROPIC_API_KEY environment variables.
var newSummarizer = func() (core.Summarizer, error) {
	var cfg config.SummaryConfig
	if err := config.LoadInto(&cfg); err != nil {
		return nil, err
	}
	return summary.New(cfg), nil
}

type invoiceOptions struct {
	profile  string
	template string
	summary  bool
	output   string
}

func newInvoiceCmd() *cobra.Command {
	opts := &invoiceOptions{}

	cmd := &cobra.Command{
		Use:   "invoice <export.csv>",
		Short: "Render a printable HTML invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoice(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "YAML invoice profile (sender, client, rates)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template: modern, classic, bold (overrides the profile)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Write an executive summary into the notes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the invoice to this file instead of stdout")
	return cmd
}

func runInvoice(cmd *cobra.Command, opts *invoiceOptions, path string) error {
	override := core.Template(opts.template)
	if opts.template != "" && !override.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidTemplate, opts.template)
	}

	profile := &Profile{}
	if opts.profile != "" {
		var err error
		if profile, err = LoadProfile(opts.profile); err != nil {
			return err
		}
	}

	preview, err := loadExport(path, profile.Rate())
	if err != nil {
		return err
	}

	now := time.Now()
	draft := &core.Draft{
		FileName:  preview.FileName,
		Entries:   preview.Entries,
		Items:     preview.Items,
		Details:   profile.Details(now),
		Report:    preview.Report,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if opts.summary {
		summarizer, err := newSummarizer()
		if err != nil {
			return err
		}
		draft.Details.Notes = core.Summarize(cmd.Context(), summarizer, draft.Entries)
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render.Page(render.NewView(draft, override)).Render(cmd.Context(), w); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	if opts.output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d items, %s)\n",
			opts.output, len(draft.Items),
			render.FormatMoney(draft.Details.Currency, draft.Totals().Total))
	}
	return nil
}
