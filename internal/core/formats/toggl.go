package formats

import "github.com/MichaelReichel/clock2doc/internal/core"

func init() {
	registerToggl()
}

// Toggl Track detailed report. Durations are HH:MM:SS and the amount column
// carries the workspace currency in its name, e.g. "Amount (USD)".
func registerToggl() {
	core.RegisterFormat(core.Format{
		Key:   "toggl",
		Label: "Toggl Track",
		Fields: []core.FieldSpec{
			{Header: "User", Field: core.EntryUser, Type: core.FieldText},
			{Header: "Email", Field: core.EntryEmail, Type: core.FieldText},
			{Header: "Client", Field: core.EntryClient, Type: core.FieldText, Default: core.DefaultClient},
			{Header: "Project", Field: core.EntryProject, Type: core.FieldText, Default: core.DefaultProject},
			{Header: "Task", Field: core.EntryTask, Type: core.FieldText},
			{Header: "Description", Field: core.EntryDescription, Type: core.FieldText, Default: core.DefaultDescription},
			{Header: "Billable", Field: core.EntryBillable, Type: core.FieldBool},
			{Header: "Start date", Aliases: []string{"Start Date"}, Field: core.EntryStartDate, Type: core.FieldText},
			{Header: "Start time", Aliases: []string{"Start Time"}, Field: core.EntryStartTime, Type: core.FieldText},
			{Header: "End date", Aliases: []string{"End Date"}, Field: core.EntryEndDate, Type: core.FieldText},
			{Header: "End time", Aliases: []string{"End Time"}, Field: core.EntryEndTime, Type: core.FieldText},
			{Header: "Duration", Field: core.EntryDuration, Type: core.FieldText},
			{Header: "Duration", Field: core.EntryDurationDecimal, Type: core.FieldClockDuration},
			{Header: "Tags", Field: core.EntryTags, Type: core.FieldText},
			{Header: "Amount (", Prefix: true, Field: core.EntryBillableAmount, Type: core.FieldDecimal},
		},
	})
}
