// Package cli implements the clock2doc command line. It runs the import
// pipeline against local export files and prints items, entries or a
// rendered invoice.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/logging"
	"github.com/spf13/cobra"

	_ "github.com/MichaelReichel/clock2doc/internal/core/formats"
)

// defaultHourlyRate prices items the export left unpriced.
const defaultHourlyRate = 50

// NewRootCmd builds the clock2doc command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "clock2doc",
		Short: "Turn time tracker CSV exports into invoices",
		Long: `clock2doc reads a Clockify, Toggl Track or Harvest CSV export,
groups the time entries into invoice line items and prints them or renders
a printable HTML invoice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Diagnostics go to stderr so they never mix with documents on stdout.
			level := "warn"
			if verbose {
				level = "debug"
			}
			slog.SetDefault(logging.New(level, "text", cmd.ErrOrStderr()))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline details to stderr")

	root.AddCommand(newItemsCmd())
	root.AddCommand(newEntriesCmd())
	root.AddCommand(newInvoiceCmd())
	root.AddCommand(newFormatsCmd())
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clock2doc:", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.MapError(err).Action)
		}
		os.Exit(1)
	}
}
