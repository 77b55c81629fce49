package cli

import (
	"strings"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the export formats clock2doc recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			all := core.Formats()
			infos := make([]core.FormatInfo, len(all))
			for i, f := range all {
				infos[i] = f.Info()
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, infos)
			}

			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.Key, info.Label, strings.Join(info.Headers, ", ")}
			}
			if format == formatCSV {
				return writeCSV(w, []string{"key", "label", "headers"}, rows)
			}
			t := &table{header: []string{"KEY", "LABEL", "HEADERS"}, rows: rows}
			return t.write(w)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, csv, json")
	return cmd
}
