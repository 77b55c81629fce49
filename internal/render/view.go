package render

import (
	"strings"

	"github.com/MichaelReichel/clock2doc/internal/core"
)

// Placeholders shown for blank sender and client fields.
const (
	SenderNamePlaceholder    = "Your Name / Business"
	SenderAddressPlaceholder = "Your Address\nYour Phone\nYour Email"
	ClientNamePlaceholder    = "Client Name"
	ClientAddressPlaceholder = "Client Address\nClient Contact Details"
)

// InvoiceView is everything an invoice template needs.
type InvoiceView struct {
	Details  core.InvoiceDetails
	Items    []core.AggregatedItem
	Totals   core.Totals
	Projects []core.ProjectHours
}

// NewView prepares a draft for rendering. A valid override replaces the
// draft's own template.
func NewView(d *core.Draft, override core.Template) InvoiceView {
	details := d.Details
	if override.Valid() {
		details.Template = override
	}
	if !details.Template.Valid() {
		details.Template = core.TemplateModern
	}
	return InvoiceView{
		Details:  details,
		Items:    d.Items,
		Totals:   d.Totals(),
		Projects: core.ProjectBreakdown(d.Items),
	}
}

// SafeLogoURL returns u when it is an http, https or data:image URL and ""
// otherwise.
func SafeLogoURL(u string) string {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "data:image/"):
		return u
	}
	return ""
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
