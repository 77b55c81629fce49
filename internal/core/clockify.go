package core

// Clockify is the detailed report export of Clockify. It is the built-in
// default format and the fallback when no other format matches a file.
var Clockify = Format{
	Key:   "clockify",
	Label: "Clockify",
	Fields: []FieldSpec{
		{Header: "Project", Field: EntryProject, Type: FieldText, Default: DefaultProject},
		{Header: "Client", Field: EntryClient, Type: FieldText, Default: DefaultClient},
		{Header: "Description", Field: EntryDescription, Type: FieldText, Default: DefaultDescription},
		{Header: "Task", Field: EntryTask, Type: FieldText},
		{Header: "User", Field: EntryUser, Type: FieldText},
		{Header: "Email", Field: EntryEmail, Type: FieldText},
		{Header: "Tags", Field: EntryTags, Type: FieldText},
		{Header: "Billable", Field: EntryBillable, Type: FieldBool},
		{Header: "Start Date", Field: EntryStartDate, Type: FieldText},
		{Header: "Start Time", Field: EntryStartTime, Type: FieldText},
		{Header: "End Date", Field: EntryEndDate, Type: FieldText},
		{Header: "End Time", Field: EntryEndTime, Type: FieldText},
		{Header: "Duration (h)", Field: EntryDuration, Type: FieldText},
		{Header: "Duration (decimal)", Field: EntryDurationDecimal, Type: FieldDecimal},
		{Header: "Billable Rate", Field: EntryBillableRate, Type: FieldDecimal},
		{Header: "Billable Amount", Field: EntryBillableAmount, Type: FieldDecimal},
		{Header: "Currency", Field: EntryCurrency, Type: FieldText, Default: DefaultCurrency},
	},
}

func init() {
	RegisterFormat(Clockify)
}
