package cli

import (
	"strconv"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/spf13/cobra"
)

func newEntriesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "entries <export.csv>",
		Short: "Print the normalized time entries of an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			preview, err := loadExport(args[0], defaultHourlyRate)
			if err != nil {
				return err
			}
			return printEntries(cmd, format, preview.Entries)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, csv, json")
	return cmd
}

func printEntries(cmd *cobra.Command, format string, entries []core.TimeEntry) error {
	w := cmd.OutOrStdout()

	if format == formatJSON {
		return writeJSON(w, entries)
	}

	header := []string{"date", "project", "client", "description", "hours", "billable"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.StartDate, e.Project, e.Client, e.Description, decimal(e.DurationDecimal), strconv.FormatBool(e.Billable)}
	}

	if format == formatCSV {
		return writeCSV(w, header, rows)
	}

	t := &table{
		header: []string{"DATE", "PROJECT", "CLIENT", "DESCRIPTION", "HOURS", "BILLABLE"},
		rows:   rows,
		right:  map[int]bool{4: true},
	}
	return t.write(w)
}
