package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
)

// Output formats.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatCSV, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, csv or json)", format)
}

// table is a grid of cells printed with aligned columns.
type table struct {
	header []string
	rows   [][]string
	right  map[int]bool // right-aligned columns
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// write prints the table. Column widths are measured in terminal cells so
// wide characters stay aligned.
func (t *table) write(w io.Writer) error {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			if t.right[i] {
				out[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				out[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(out, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(line(t.header) + "\n")
	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	b.WriteString(strings.Join(rule, "  ") + "\n")
	for _, row := range t.rows {
		b.WriteString(line(row) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeCSV prints header and rows as CSV.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func decimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
