package csvparse

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "simple rows",
			input: "a,b\nc,d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "delimiter inside quotes",
			input: `a,"b,c",d`,
			want:  [][]string{{"a", "b,c", "d"}},
		},
		{
			name:  "escaped quote",
			input: `"he said ""hi"""`,
			want:  [][]string{{`he said "hi"`}},
		},
		{
			name:  "newline inside quotes",
			input: "\"line1\nline2\",x\n",
			want:  [][]string{{"line1\nline2", "x"}},
		},
		{
			name:  "CR only terminators",
			input: "a,b\rc,d\r",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "blank and whitespace rows dropped",
			input: "a,b\n\n , \n,\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "trailing comma keeps empty cell",
			input: "a,\n",
			want:  [][]string{{"a", ""}},
		},
		{
			name:  "residue without trailing newline",
			input: "a,b\nc",
			want:  [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:  "residue of blank cells dropped",
			input: "a\n ,",
			want:  [][]string{{"a"}},
		},
		{
			name:  "unterminated quote consumes rest",
			input: "a,\"b,c\nd",
			want:  [][]string{{"a", "b,c\nd"}},
		},
		{
			name:  "quote in middle of cell toggles state",
			input: `ab"c,d"e,f`,
			want:  [][]string{{"abc,de", "f"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "multibyte text untouched",
			input: "Café,naïve\n",
			want:  [][]string{{"Café", "naïve"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_RowCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("Project,Description\n")
	for i := 0; i < 50; i++ {
		b.WriteString("P,D\n")
	}

	rows := Parse(b.String())
	if len(rows) != 51 {
		t.Errorf("len(rows) = %d, want 51", len(rows))
	}
}

func TestParse_CRLFMatchesLF(t *testing.T) {
	lf := "Project,Description\nAlpha,\"Fix, bug\"\nBeta,Deploy\n"
	crlf := strings.ReplaceAll(lf, "\n", "\r\n")

	if got, want := Parse(crlf), Parse(lf); !reflect.DeepEqual(got, want) {
		t.Errorf("CRLF rows = %q, LF rows = %q", got, want)
	}
}
