package cli

import (
	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/spf13/cobra"
)

type itemsOptions struct {
	format       string
	rate         float64
	fallbackRate float64
}

func newItemsCmd() *cobra.Command {
	opts := &itemsOptions{}

	cmd := &cobra.Command{
		Use:   "items <export.csv>",
		Short: "Print aggregated invoice line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if opts.rate < 0 || opts.fallbackRate < 0 {
				return core.ErrInvalidRate
			}

			preview, err := loadExport(args[0], opts.fallbackRate)
			if err != nil {
				return err
			}

			items := preview.Items
			if cmd.Flags().Changed("rate") {
				items = core.ApplyRate(items, opts.rate)
			}
			return printItems(cmd, opts.format, items, preview.Report)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "Output format: table, csv, json")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "Price every item at this hourly rate")
	cmd.Flags().Float64Var(&opts.fallbackRate, "fallback-rate", defaultHourlyRate, "Hourly rate for items the export left unpriced")
	return cmd
}

func printItems(cmd *cobra.Command, format string, items []core.AggregatedItem, report core.ImportReport) error {
	w := cmd.OutOrStdout()
	totals := core.ComputeTotals(items, 0)

	switch format {
	case formatJSON:
		return writeJSON(w, struct {
			Items    []core.AggregatedItem `json:"items"`
			Totals   core.Totals           `json:"totals"`
			Projects []core.ProjectHours   `json:"projects"`
			Report   core.ImportReport     `json:"report"`
		}{items, totals, core.ProjectBreakdown(items), report})

	case formatCSV:
		rows := make([][]string, len(items))
		for i, item := range items {
			rows[i] = []string{item.Description, item.Project, decimal(item.Quantity), decimal(item.Rate), decimal(item.Total)}
		}
		return writeCSV(w, []string{"description", "project", "hours", "rate", "total"}, rows)
	}

	t := &table{
		header: []string{"DESCRIPTION", "PROJECT", "HOURS", "RATE", "TOTAL"},
		right:  map[int]bool{2: true, 3: true, 4: true},
	}
	for _, item := range items {
		t.add(item.Description, item.Project, decimal(item.Quantity), decimal(item.Rate), decimal(item.Total))
	}
	t.add("Total", "", decimal(core.TotalHours(items)), "", decimal(totals.Subtotal))
	return t.write(w)
}
