// Package csvparse turns delimited export text into rows of string cells.
//
// The parser is deliberately lenient. It never returns an error: quoted
// cells may contain commas, escaped quotes ("") and line breaks, CR, LF and
// CRLF all end a row, rows made only of blank cells are dropped, and an
// unterminated quoted cell is kept as-is at end of input.
//
// Reading the raw bytes (BOM removal, UTF-8 repair, size limits) lives in
// reader.go; Parse itself only ever sees a string.
package csvparse

import "strings"

// parseState is the parser's position relative to a quoted cell.
type parseState int

const (
	stateNormal parseState = iota
	stateQuoted
)

// Parse splits text into rows of cells.
//
// Example:
//
//	rows := csvparse.Parse("a,\"b,c\",d\r\n")
//	// rows == [][]string{{"a", "b,c", "d"}}
func Parse(text string) [][]string {
	var (
		rows  [][]string
		row   []string
		cell  strings.Builder
		state = stateNormal
	)

	endRow := func() {
		row = append(row, cell.String())
		cell.Reset()
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if state == stateQuoted {
			switch {
			case c == '"' && i+1 < len(text) && text[i+1] == '"':
				cell.WriteByte('"')
				i++
			case c == '"':
				state = stateNormal
			default:
				cell.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			state = stateQuoted
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n', '\r':
			endRow()
			// CRLF is one terminator
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			cell.WriteByte(c)
		}
	}

	if len(row) > 0 || cell.Len() > 0 {
		endRow()
	}

	return rows
}

// isBlankRow reports whether every cell is empty after trimming whitespace.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
