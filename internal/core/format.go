package core

import (
	"fmt"
	"strings"
	"sync"
)

// FieldType is how a cell is converted into a TimeEntry field.
type FieldType int

const (
	FieldText          FieldType = iota // trimmed string, Default when empty
	FieldBool                           // true only for the exact token "Yes"
	FieldDecimal                        // permissive decimal, 0 on failure
	FieldClockDuration                  // "HH:MM[:SS]" converted to decimal hours
)

// EntryField names the TimeEntry field a column feeds.
type EntryField int

const (
	EntryProject EntryField = iota
	EntryClient
	EntryDescription
	EntryTask
	EntryUser
	EntryEmail
	EntryTags
	EntryBillable
	EntryStartDate
	EntryStartTime
	EntryEndDate
	EntryEndTime
	EntryDuration
	EntryDurationDecimal
	EntryBillableRate
	EntryBillableAmount
	EntryCurrency
)

// FieldSpec maps one export column onto a TimeEntry field.
type FieldSpec struct {
	Header  string     // Column header (exact match after trim)
	Aliases []string   // Alternate spellings accepted for the same column
	Prefix  bool       // Match any header starting with Header, e.g. "Amount (EUR)"
	Field   EntryField // Target field
	Type    FieldType  // Conversion applied to the cell
	Default string     // Used for text fields when the cell is empty or absent
}

// Format is a declarative description of one time-tracker export layout.
type Format struct {
	Key    string // Unique identifier: "clockify"
	Label  string // Display name: "Clockify"
	Fields []FieldSpec
}

// Headers returns the distinct column headers the format expects, in order.
func (f Format) Headers() []string {
	seen := make(map[string]bool, len(f.Fields))
	headers := make([]string, 0, len(f.Fields))
	for _, spec := range f.Fields {
		if seen[spec.Header] {
			continue
		}
		seen[spec.Header] = true
		headers = append(headers, spec.Header)
	}
	return headers
}

// FormatInfo is the public description of a registered format.
type FormatInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Headers []string `json:"headers"`
}

// Info returns the format's public description.
func (f Format) Info() FormatInfo {
	return FormatInfo{Key: f.Key, Label: f.Label, Headers: f.Headers()}
}

// FormatMatchThreshold is the minimum share of a file's header cells a
// format must claim for DetectFormat to pick it.
const FormatMatchThreshold = 0.5

var (
	formats   = make(map[string]Format)
	formatSeq []string
	formatsMu sync.RWMutex
)

// RegisterFormat adds an export format to the registry.
// Panics if a format with the same key is already registered.
func RegisterFormat(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()

	if _, exists := formats[f.Key]; exists {
		panic(fmt.Sprintf("format already registered: %s", f.Key))
	}

	formats[f.Key] = f
	formatSeq = append(formatSeq, f.Key)
}

// LookupFormat returns a format by key.
func LookupFormat(key string) (Format, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	f, ok := formats[key]
	return f, ok
}

// Formats returns all registered formats in registration order.
func Formats() []Format {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	result := make([]Format, 0, len(formatSeq))
	for _, key := range formatSeq {
		result = append(result, formats[key])
	}
	return result
}

// DetectFormat picks the registered format that claims the largest share
// of the file's header cells. Equal shares go to the format matching more
// of its own columns, then to the earlier registration, so Clockify wins
// ties. When no
// format reaches FormatMatchThreshold, Clockify is returned with its score.
func DetectFormat(header []string) (Format, float64) {
	idx := newHeaderIndex(header)

	best := Clockify
	bestScore, bestMatched := -1.0, -1
	for _, f := range Formats() {
		score, matched := f.matchScore(idx)
		if score > bestScore || (score == bestScore && matched > bestMatched) {
			best, bestScore, bestMatched = f, score, matched
		}
	}

	if bestScore < FormatMatchThreshold {
		score, _ := Clockify.matchScore(idx)
		return Clockify, score
	}
	return best, bestScore
}

// matchScore returns the fraction of the file's non-blank header cells the
// format resolves, and how many of the format's distinct headers matched.
func (f Format) matchScore(idx headerIndex) (float64, int) {
	columns := 0
	for _, name := range idx.names {
		if name != "" {
			columns++
		}
	}
	if columns == 0 {
		return 0, 0
	}

	claimed := make(map[int]bool, len(idx.names))
	matched := 0
	for _, spec := range f.uniqueSpecs() {
		if i, ok := idx.lookup(spec); ok {
			claimed[i] = true
			matched++
		}
	}
	return float64(len(claimed)) / float64(columns), matched
}

// uniqueSpecs returns the first spec for each distinct header.
func (f Format) uniqueSpecs() []FieldSpec {
	seen := make(map[string]bool, len(f.Fields))
	specs := make([]FieldSpec, 0, len(f.Fields))
	for _, spec := range f.Fields {
		if seen[spec.Header] {
			continue
		}
		seen[spec.Header] = true
		specs = append(specs, spec)
	}
	return specs
}

// headerIndex maps trimmed header names to their column position.
// When a header repeats, the last position wins.
type headerIndex struct {
	pos   map[string]int
	names []string
}

func newHeaderIndex(header []string) headerIndex {
	idx := headerIndex{
		pos:   make(map[string]int, len(header)),
		names: make([]string, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		idx.names[i] = h
		idx.pos[h] = i
	}
	return idx
}

// lookup resolves the column position for spec.
func (idx headerIndex) lookup(spec FieldSpec) (int, bool) {
	if i, ok := idx.pos[spec.Header]; ok {
		return i, true
	}
	for _, alias := range spec.Aliases {
		if i, ok := idx.pos[alias]; ok {
			return i, true
		}
	}
	if spec.Prefix {
		// Last matching column wins, as with duplicate headers.
		found := -1
		for i, name := range idx.names {
			if strings.HasPrefix(name, spec.Header) {
				found = i
			}
		}
		if found >= 0 {
			return found, true
		}
	}
	return 0, false
}
