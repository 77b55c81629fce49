package core

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestWithFallbackRate(t *testing.T) {
	items := []AggregatedItem{
		{ID: "1", Quantity: 2, Rate: 0, Total: 0},
		{ID: "2", Quantity: 2, Rate: 80, Total: 150},
		{ID: "3", Quantity: 3, Rate: 0, Total: 90},
	}

	got := WithFallbackRate(items, 50)

	if got[0].Rate != 50 || got[0].Total != 100 {
		t.Errorf("unpriced item = %+v, want rate 50 total 100", got[0])
	}
	if got[1].Rate != 80 || got[1].Total != 150 {
		t.Errorf("priced item changed: %+v", got[1])
	}
	if got[2].Rate != 50 || got[2].Total != 90 {
		t.Errorf("item with total only = %+v, want rate 50 total 90", got[2])
	}
	if items[0].Rate != 0 {
		t.Error("input was modified")
	}
}

func TestApplyRate(t *testing.T) {
	items := []AggregatedItem{
		{ID: "1", Quantity: 2, Rate: 80, Total: 170},
		{ID: "2", Quantity: 0.5, Rate: 0, Total: 0},
	}

	got := ApplyRate(items, 60)

	if got[0].Rate != 60 || got[0].Total != 120 {
		t.Errorf("item 0 = %+v", got[0])
	}
	if got[1].Rate != 60 || got[1].Total != 30 {
		t.Errorf("item 1 = %+v", got[1])
	}
	if items[0].Total != 170 {
		t.Error("input was modified")
	}

	// 0.1 * 3 is 0.30000000000000004 in float64.
	if got := ApplyRate([]AggregatedItem{{Quantity: 0.1}}, 3); got[0].Total != 0.3 {
		t.Errorf("ApplyRate(0.1h at 3) total = %v, want 0.3", got[0].Total)
	}
}

func TestComputeTotals(t *testing.T) {
	items := []AggregatedItem{{Total: 100}, {Total: 50}}

	got := ComputeTotals(items, 10)
	want := Totals{Subtotal: 150, Tax: 15, Total: 165}
	if got != want {
		t.Errorf("ComputeTotals() = %+v, want %+v", got, want)
	}

	if got := ComputeTotals([]AggregatedItem{{Total: 0.1}, {Total: 0.2}}, 0); got.Subtotal != 0.3 || got.Total != 0.3 {
		t.Errorf("ComputeTotals(0.1+0.2) = %+v, want 0.3", got)
	}

	// 8.25% of 99.99 is 8.249175, which rounds to 8.25.
	got = ComputeTotals([]AggregatedItem{{Total: 99.99}}, 8.25)
	if want := (Totals{Subtotal: 99.99, Tax: 8.25, Total: 108.24}); got != want {
		t.Errorf("ComputeTotals(tax) = %+v, want %+v", got, want)
	}

	if got := ComputeTotals(nil, 20); got != (Totals{}) {
		t.Errorf("ComputeTotals(nil) = %+v, want zero", got)
	}
}

func TestProjectBreakdown(t *testing.T) {
	items := []AggregatedItem{
		{Project: "B", Quantity: 1},
		{Project: "A", Quantity: 2},
		{Project: "B", Quantity: 0.5},
	}

	got := ProjectBreakdown(items)
	want := []ProjectHours{{Project: "B", Hours: 1.5}, {Project: "A", Hours: 2}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if TotalHours(items) != 3.5 {
		t.Errorf("TotalHours = %v, want 3.5", TotalHours(items))
	}
}

func TestNewDetails(t *testing.T) {
	now := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)

	d := NewDetails(now, DetailsDefaults{HourlyRate: 50})

	if ok, _ := regexp.MatchString(`^INV-2024-[1-9]\d{3}$`, d.InvoiceNumber); !ok {
		t.Errorf("InvoiceNumber = %q", d.InvoiceNumber)
	}
	if d.Date != "2024-12-25" {
		t.Errorf("Date = %q", d.Date)
	}
	if d.DueDate != "2025-01-08" {
		t.Errorf("DueDate = %q, want 2025-01-08", d.DueDate)
	}
	if d.Notes != DefaultNotes || d.Currency != "$" || d.Template != TemplateModern {
		t.Errorf("defaults = %+v", d)
	}
	if d.HourlyRate != 50 || d.TaxRate != 0 {
		t.Errorf("rates = %v/%v", d.HourlyRate, d.TaxRate)
	}
}

func TestDetailsPatch(t *testing.T) {
	base := InvoiceDetails{ClientName: "Old", TaxRate: 5, Template: TemplateModern}

	name := "New client"
	tax := 0.0
	bold := TemplateBold
	got := DetailsPatch{ClientName: &name, TaxRate: &tax, Template: &bold}.Apply(base)

	if got.ClientName != "New client" || got.TaxRate != 0 || got.Template != TemplateBold {
		t.Errorf("Apply() = %+v", got)
	}
	if base.ClientName != "Old" {
		t.Error("base was modified")
	}

	bad := Template("fancy")
	if err := (DetailsPatch{Template: &bad}).Validate(); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("Validate(bad template) = %v, want ErrInvalidTemplate", err)
	}
	neg := -1.0
	if err := (DetailsPatch{HourlyRate: &neg}).Validate(); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Validate(negative rate) = %v, want ErrInvalidRate", err)
	}
}
