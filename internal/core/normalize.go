package core

import "strings"

// Defaults applied when an identifying text field is empty.
const (
	DefaultProject     = "No Project"
	DefaultClient      = "No Client"
	DefaultDescription = "No Description"
	DefaultCurrency    = "USD"
)

// NormalizeResult is the outcome of normalizing one parsed export.
type NormalizeResult struct {
	Entries []TimeEntry
	Report  ImportReport
}

// Normalize maps parsed rows of a Clockify export into time entries.
//
// The first row is the header. Rows whose Project and Description are both
// empty are dropped. Fewer than two rows yields an empty result.
func Normalize(rows [][]string) []TimeEntry {
	return NormalizeFormat(rows, Clockify).Entries
}

// NormalizeFormat maps parsed rows into time entries using format f.
//
// Columns are matched to f's field specs once, from the header row. Headers
// that f expects but the file lacks are listed in the report's
// MissingFields; their fields take default values in every entry.
func NormalizeFormat(rows [][]string, f Format) NormalizeResult {
	result := NormalizeResult{
		Entries: []TimeEntry{},
		Report:  ImportReport{Format: f.Key},
	}
	if len(rows) == 0 {
		return result
	}

	idx := newHeaderIndex(rows[0])

	cols := make([]int, len(f.Fields))
	for i, spec := range f.Fields {
		col, ok := idx.lookup(spec)
		if !ok {
			col = -1
		}
		cols[i] = col
	}
	for _, spec := range f.uniqueSpecs() {
		if _, ok := idx.lookup(spec); !ok {
			result.Report.MissingFields = append(result.Report.MissingFields, spec.Header)
		}
	}

	result.Report.Rows = len(rows) - 1

	for _, row := range rows[1:] {
		values := make([]string, len(f.Fields))
		var project, description string
		for i, spec := range f.Fields {
			if col := cols[i]; col >= 0 && col < len(row) {
				values[i] = strings.TrimSpace(row[col])
			}
			switch spec.Field {
			case EntryProject:
				project = values[i]
			case EntryDescription:
				description = values[i]
			}
		}

		// An entry needs a project or a description to be identifiable.
		if project == "" && description == "" {
			result.Report.Skipped++
			continue
		}

		entry := TimeEntry{}
		for i, spec := range f.Fields {
			entry.set(spec, values[i])
		}
		entry.applyDefaults()
		result.Entries = append(result.Entries, entry)
	}

	result.Report.Entries = len(result.Entries)
	return result
}

// set converts value according to spec and stores it in the target field.
func (e *TimeEntry) set(spec FieldSpec, value string) {
	switch spec.Type {
	case FieldBool:
		e.setBool(spec.Field, value == "Yes")
		return
	case FieldDecimal:
		e.setNumber(spec.Field, ParseDecimal(value))
		return
	case FieldClockDuration:
		e.setNumber(spec.Field, ParseClockDuration(value))
		return
	}

	if value == "" {
		value = spec.Default
	}
	switch spec.Field {
	case EntryProject:
		e.Project = value
	case EntryClient:
		e.Client = value
	case EntryDescription:
		e.Description = value
	case EntryTask:
		e.Task = value
	case EntryUser:
		e.User = value
	case EntryEmail:
		e.Email = value
	case EntryTags:
		e.Tags = value
	case EntryStartDate:
		e.StartDate = value
	case EntryStartTime:
		e.StartTime = value
	case EntryEndDate:
		e.EndDate = value
	case EntryEndTime:
		e.EndTime = value
	case EntryDuration:
		e.Duration = value
	case EntryCurrency:
		e.Currency = value
	}
}

// applyDefaults fills identifying fields a format does not map at all.
func (e *TimeEntry) applyDefaults() {
	if e.Project == "" {
		e.Project = DefaultProject
	}
	if e.Client == "" {
		e.Client = DefaultClient
	}
	if e.Description == "" {
		e.Description = DefaultDescription
	}
	if e.Currency == "" {
		e.Currency = DefaultCurrency
	}
}

func (e *TimeEntry) setBool(field EntryField, v bool) {
	if field == EntryBillable {
		e.Billable = v
	}
}

func (e *TimeEntry) setNumber(field EntryField, v float64) {
	switch field {
	case EntryDurationDecimal:
		e.DurationDecimal = v
	case EntryBillableRate:
		e.BillableRate = v
	case EntryBillableAmount:
		e.BillableAmount = v
	}
}
