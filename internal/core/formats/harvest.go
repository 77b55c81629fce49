package formats

import "github.com/MichaelReichel/clock2doc/internal/core"

func init() {
	registerHarvest()
}

// Harvest detailed time report. Hours are already decimal.
func registerHarvest() {
	core.RegisterFormat(core.Format{
		Key:   "harvest",
		Label: "Harvest",
		Fields: []core.FieldSpec{
			{Header: "Date", Field: core.EntryStartDate, Type: core.FieldText},
			{Header: "Client", Field: core.EntryClient, Type: core.FieldText, Default: core.DefaultClient},
			{Header: "Project", Field: core.EntryProject, Type: core.FieldText, Default: core.DefaultProject},
			{Header: "Task", Field: core.EntryTask, Type: core.FieldText},
			{Header: "Notes", Field: core.EntryDescription, Type: core.FieldText, Default: core.DefaultDescription},
			{Header: "Hours", Field: core.EntryDurationDecimal, Type: core.FieldDecimal},
			{Header: "Billable?", Field: core.EntryBillable, Type: core.FieldBool},
			{Header: "First Name", Field: core.EntryUser, Type: core.FieldText},
			{Header: "Billable Rate", Field: core.EntryBillableRate, Type: core.FieldDecimal},
			{Header: "Billable Amount", Field: core.EntryBillableAmount, Type: core.FieldDecimal},
			{Header: "Currency", Field: core.EntryCurrency, Type: core.FieldText, Default: core.DefaultCurrency},
		},
	})
}
