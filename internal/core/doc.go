// Package core provides the business logic for turning time-tracking exports
// into invoice drafts.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the HTTP server, the CLI and tests without
// modification.
//
// # Pipeline
//
// An export flows through four steps, each a pure function:
//
//  1. [csvparse.Parse] splits the text into rows of cells
//  2. [DetectFormat] picks the registered [Format] matching the header row
//  3. [NormalizeFormat] maps rows into [TimeEntry] values
//  4. [Aggregate] groups entries into [AggregatedItem] line items
//
// [BuildPreview] runs all four and prices unpriced items at the default
// hourly rate.
//
// # Formats
//
// Export layouts are declared, not coded. Each [Format] lists the columns it
// expects as [FieldSpec] values and is registered at init time:
//
//	core.RegisterFormat(core.Format{
//	    Key:   "toggl",
//	    Label: "Toggl Track",
//	    Fields: []core.FieldSpec{
//	        {Header: "Project", Field: core.EntryProject, Type: core.FieldText, Default: core.DefaultProject},
//	        {Header: "Duration", Field: core.EntryDurationDecimal, Type: core.FieldClockDuration},
//	    },
//	})
//
// Clockify is built in and is the fallback for unrecognized headers.
//
// # Drafts
//
// [Service] stores each import as a [Draft]: the entries, the line items and
// the invoice details being edited. Drafts expire after a configurable idle
// time (see [Service.StartDraftSweeper]).
//
// # Error Handling
//
// The pipeline never fails on malformed input; bad cells degrade to defaults
// and unidentifiable rows are skipped and counted in [ImportReport].
// Service errors are sentinel values checked with errors.Is and mapped to
// user-facing messages by [MapError].
package core
