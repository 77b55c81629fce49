package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/MichaelReichel/clock2doc/internal/core"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		symbol string
		amount float64
		want   string
	}{
		{"$", 0, "$0.00"},
		{"$", 5, "$5.00"},
		{"$", 999.999, "$1,000.00"},
		{"$", 1234.5, "$1,234.50"},
		{"€", 1234567.891, "€1,234,567.89"},
		{"$", -42.1, "-$42.10"},
		{"", 100, "100.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.symbol, tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.symbol, tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	for in, want := range map[float64]string{0: "0", 10: "10", 8.25: "8.25"} {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeLogoURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/logo.png", "https://example.com/logo.png"},
		{"http://example.com/logo.png", "http://example.com/logo.png"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"javascript:alert(1)", ""},
		{"data:text/html,<script>", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SafeLogoURL(tt.in); got != tt.want {
			t.Errorf("SafeLogoURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleDraft() *core.Draft {
	return &core.Draft{
		Items: []core.AggregatedItem{
			{ID: "1", Project: "Website", Description: "Design <review>", Quantity: 10, Rate: 100, Total: 1000},
			{ID: "2", Project: "Support", Description: "Tickets", Quantity: 2.5, Rate: 80, Total: 200},
			{ID: "3", Project: "Website", Description: "Deploy", Quantity: 1, Rate: 100, Total: 100},
		},
		Details: core.InvoiceDetails{
			InvoiceNumber:      "INV-2024-4321",
			Date:               "2024-03-01",
			DueDate:            "2024-03-15",
			ClientName:         "Acme & Co",
			TaxRate:            10,
			Currency:           "$",
			ShowProjectSummary: true,
			Template:           core.TemplateClassic,
		},
	}
}

func render(t *testing.T, view InvoiceView) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Page(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestPage(t *testing.T) {
	out := render(t, NewView(sampleDraft(), ""))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Invoice INV-2024-4321</title>",
		"invoice-classic",
		"Georgia",
		"Design &lt;review&gt;",
		"Acme &amp; Co",
		SenderNamePlaceholder,
		"Time Breakdown",
		"11.00h",
		"$1,000.00",
		"Tax (10%)",
		"$130.00",
		"$1,430.00",
		core.FallbackSummary,
		ProductName,
		"@media print",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<review>") {
		t.Error("item description not escaped")
	}
}

func TestPage_TemplateOverride(t *testing.T) {
	out := render(t, NewView(sampleDraft(), core.TemplateBold))
	if !strings.Contains(out, "invoice-bold") || !strings.Contains(out, "Ref: INV-2024-4321") {
		t.Error("bold override not applied")
	}
	if strings.Contains(out, "invoice-footer") {
		t.Error("bold template has no footer")
	}

	out = render(t, NewView(sampleDraft(), "neon"))
	if !strings.Contains(out, "invoice-classic") {
		t.Error("invalid override should keep the draft's template")
	}
}

func TestPage_Logo(t *testing.T) {
	d := sampleDraft()
	d.Details.LogoURL = "javascript:alert(1)"
	out := render(t, NewView(d, ""))
	if strings.Contains(out, "javascript:") {
		t.Error("unsafe logo URL rendered")
	}
	if !strings.Contains(out, `class="product-mark"`) {
		t.Error("product mark missing without logo")
	}

	d.Details.LogoURL = "https://example.com/logo.png"
	out = render(t, NewView(d, ""))
	if !strings.Contains(out, `src="https://example.com/logo.png"`) {
		t.Error("logo missing")
	}
}

func TestPage_HidesProjectSummary(t *testing.T) {
	d := sampleDraft()
	d.Details.ShowProjectSummary = false
	d.Details.Notes = "Thanks!"
	out := render(t, NewView(d, ""))
	if strings.Contains(out, "Time Breakdown") {
		t.Error("project summary shown while disabled")
	}
	if !strings.Contains(out, "Thanks!") {
		t.Error("notes missing")
	}
}
