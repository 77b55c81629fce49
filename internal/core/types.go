// Package core provides the business logic for turning time-tracking exports
// into invoice drafts. This package has no UI dependencies and can be used by
// any frontend.
package core

import "time"

// TimeEntry is one normalized row of a time-tracking export.
// Entries are never modified after normalization.
type TimeEntry struct {
	Project         string  `json:"project"`
	Client          string  `json:"client"`
	Description     string  `json:"description"`
	Task            string  `json:"task"`
	User            string  `json:"user"`
	Email           string  `json:"email"`
	Tags            string  `json:"tags"`
	Billable        bool    `json:"billable"`
	StartDate       string  `json:"startDate"`
	StartTime       string  `json:"startTime"`
	EndDate         string  `json:"endDate"`
	EndTime         string  `json:"endTime"`
	Duration        string  `json:"duration"`
	DurationDecimal float64 `json:"durationDecimal"`
	BillableRate    float64 `json:"billableRate"`
	BillableAmount  float64 `json:"billableAmount"`
	Currency        string  `json:"currency"`
}

// AggregatedItem is an invoice line item: all entries sharing a project and
// description.
type AggregatedItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Project     string  `json:"project"`
	Quantity    float64 `json:"quantity"` // hours
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

// Template selects the visual theme of a rendered invoice.
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateBold    Template = "bold"
)

// Templates lists every supported template in display order.
var Templates = []Template{TemplateModern, TemplateClassic, TemplateBold}

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// InvoiceDetails holds everything on an invoice that does not come from the
// export itself.
type InvoiceDetails struct {
	InvoiceNumber      string   `json:"invoiceNumber"`
	Date               string   `json:"date"`
	DueDate            string   `json:"dueDate"`
	SenderName         string   `json:"senderName"`
	SenderAddress      string   `json:"senderAddress"`
	ClientName         string   `json:"clientName"`
	ClientAddress      string   `json:"clientAddress"`
	Notes              string   `json:"notes"`
	TaxRate            float64  `json:"taxRate"` // percent
	Currency           string   `json:"currency"`
	HourlyRate         float64  `json:"hourlyRate"`
	LogoURL            string   `json:"logoUrl,omitempty"`
	ShowProjectSummary bool     `json:"showProjectSummary"`
	Template           Template `json:"template"`
}

// DetailsPatch is a partial update of InvoiceDetails. Nil fields are left
// unchanged.
type DetailsPatch struct {
	InvoiceNumber      *string   `json:"invoiceNumber,omitempty"`
	Date               *string   `json:"date,omitempty"`
	DueDate            *string   `json:"dueDate,omitempty"`
	SenderName         *string   `json:"senderName,omitempty"`
	SenderAddress      *string   `json:"senderAddress,omitempty"`
	ClientName         *string   `json:"clientName,omitempty"`
	ClientAddress      *string   `json:"clientAddress,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	TaxRate            *float64  `json:"taxRate,omitempty"`
	Currency           *string   `json:"currency,omitempty"`
	HourlyRate         *float64  `json:"hourlyRate,omitempty"`
	LogoURL            *string   `json:"logoUrl,omitempty"`
	ShowProjectSummary *bool     `json:"showProjectSummary,omitempty"`
	Template           *Template `json:"template,omitempty"`
}

// Totals are the computed money figures at the bottom of an invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ProjectHours is one line of the per-project hours breakdown.
type ProjectHours struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
}

// ImportReport describes what happened to an export during import.
type ImportReport struct {
	Format        string   `json:"format"`
	Rows          int      `json:"rows"`    // data rows after the header
	Entries       int      `json:"entries"` // rows that became entries
	Skipped       int      `json:"skipped"` // rows without project and description
	MissingFields []string `json:"missingFields,omitempty"`
}

// Draft is one imported export together with the invoice being built from it.
type Draft struct {
	ID        string           `json:"id"`
	FileName  string           `json:"fileName"`
	Entries   []TimeEntry      `json:"entries"`
	Items     []AggregatedItem `json:"items"`
	Details   InvoiceDetails   `json:"details"`
	Report    ImportReport     `json:"report"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Totals computes the draft's invoice totals.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Items, d.Details.TaxRate)
}

// Preview is the result of running an export through the pipeline without
// saving it.
type Preview struct {
	FileName string           `json:"fileName"`
	Entries  []TimeEntry      `json:"entries"`
	Items    []AggregatedItem `json:"items"`
	Report   ImportReport     `json:"report"`
}

// Message is a contact form submission kept for the admin inbox.
type Message struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
