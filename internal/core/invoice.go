package core

// invoice.go holds the arithmetic applied to line items after aggregation:
// rate fallbacks, the global rate override, totals and the per-project
// hours breakdown. Every function returns fresh values and leaves its input
// untouched. Money is computed in decimal and rounded to cents; hours stay
// float64 as they come from the export.

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// lineTotal is quantity * rate rounded to cents.
func lineTotal(quantity, rate float64) float64 {
	return cents(decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(rate)))
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// DateLayout is the format of invoice and due dates.
const DateLayout = "2006-01-02"

// DefaultNotes is the closing line of a new invoice.
const DefaultNotes = "Thank you for your business!"

// WithFallbackRate fills in items the export left unpriced: a zero rate
// becomes hourlyRate and a zero total becomes quantity * hourlyRate.
func WithFallbackRate(items []AggregatedItem, hourlyRate float64) []AggregatedItem {
	out := make([]AggregatedItem, len(items))
	for i, item := range items {
		if item.Rate == 0 {
			item.Rate = hourlyRate
		}
		if item.Total == 0 {
			item.Total = lineTotal(item.Quantity, hourlyRate)
		}
		out[i] = item
	}
	return out
}

// ApplyRate prices every item at rate: total = quantity * rate.
func ApplyRate(items []AggregatedItem, rate float64) []AggregatedItem {
	out := make([]AggregatedItem, len(items))
	for i, item := range items {
		item.Rate = rate
		item.Total = lineTotal(item.Quantity, rate)
		out[i] = item
	}
	return out
}

// ComputeTotals sums item totals and applies taxRate (a percentage). Each
// figure is rounded to cents and Total is exactly Subtotal + Tax.
func ComputeTotals(items []AggregatedItem, taxRate float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Total))
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)

	return Totals{
		Subtotal: cents(subtotal),
		Tax:      cents(tax),
		Total:    cents(subtotal.Add(tax)),
	}
}

// TotalHours sums item quantities.
func TotalHours(items []AggregatedItem) float64 {
	var hours float64
	for _, item := range items {
		hours += item.Quantity
	}
	return hours
}

// ProjectBreakdown sums hours per project in first-seen order.
func ProjectBreakdown(items []AggregatedItem) []ProjectHours {
	result := make([]ProjectHours, 0)
	positions := make(map[string]int)
	for _, item := range items {
		pos, ok := positions[item.Project]
		if !ok {
			pos = len(result)
			positions[item.Project] = pos
			result = append(result, ProjectHours{Project: item.Project})
		}
		result[pos].Hours += item.Quantity
	}
	return result
}

// NewInvoiceNumber returns a number of the form INV-<year>-<1000..9999>.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.Year(), 1000+rand.IntN(9000))
}

// DetailsDefaults are the configurable starting values of a new invoice.
type DetailsDefaults struct {
	Currency      string
	HourlyRate    float64
	TaxRate       float64
	Notes         string
	DueDays       int
	Template      Template
	SenderName    string
	SenderAddress string
}

// NewDetails builds the details of a fresh invoice issued at now.
func NewDetails(now time.Time, d DetailsDefaults) InvoiceDetails {
	if d.Currency == "" {
		d.Currency = "$"
	}
	if d.Notes == "" {
		d.Notes = DefaultNotes
	}
	if d.DueDays <= 0 {
		d.DueDays = 14
	}
	if !d.Template.Valid() {
		d.Template = TemplateModern
	}

	return InvoiceDetails{
		InvoiceNumber: NewInvoiceNumber(now),
		Date:          now.Format(DateLayout),
		DueDate:       now.AddDate(0, 0, d.DueDays).Format(DateLayout),
		SenderName:    d.SenderName,
		SenderAddress: d.SenderAddress,
		Notes:         d.Notes,
		TaxRate:       d.TaxRate,
		Currency:      d.Currency,
		HourlyRate:    d.HourlyRate,
		Template:      d.Template,
	}
}

// Apply returns details with every non-nil field of p applied.
func (p DetailsPatch) Apply(d InvoiceDetails) InvoiceDetails {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&d.InvoiceNumber, p.InvoiceNumber)
	setString(&d.Date, p.Date)
	setString(&d.DueDate, p.DueDate)
	setString(&d.SenderName, p.SenderName)
	setString(&d.SenderAddress, p.SenderAddress)
	setString(&d.ClientName, p.ClientName)
	setString(&d.ClientAddress, p.ClientAddress)
	setString(&d.Notes, p.Notes)
	setString(&d.Currency, p.Currency)
	setString(&d.LogoURL, p.LogoURL)
	if p.TaxRate != nil {
		d.TaxRate = *p.TaxRate
	}
	if p.HourlyRate != nil {
		d.HourlyRate = *p.HourlyRate
	}
	if p.ShowProjectSummary != nil {
		d.ShowProjectSummary = *p.ShowProjectSummary
	}
	if p.Template != nil {
		d.Template = *p.Template
	}
	return d
}

// Validate checks the patch for values no invoice can hold.
func (p DetailsPatch) Validate() error {
	if p.Template != nil && !p.Template.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, *p.Template)
	}
	if p.TaxRate != nil && *p.TaxRate < 0 {
		return fmt.Errorf("%w: tax rate %v", ErrInvalidRate, *p.TaxRate)
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate %v", ErrInvalidRate, *p.HourlyRate)
	}
	return nil
}
