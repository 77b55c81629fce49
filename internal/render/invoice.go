// Package render turns invoice drafts into printable HTML.
package render

import (
	"context"
	"io"
	"strings"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/a-h/templ"
)

// ProductName is shown in place of a missing logo and in the footer.
const ProductName = "Clock2Doc"

// printer writes HTML and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes s escaped.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// Invoice renders the invoice body for view.
func Invoice(view InvoiceView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		th := themeFor(view.Details.Template)
		p := &printer{w: w}

		p.raw(`<article class="invoice invoice-`, string(view.Details.Template), `" style="font-family:`, templ.EscapeString(th.font), `;color:#0f172a">`)
		if th.headerBand {
			writeBandHeader(p, view, th)
		} else {
			writeHeader(p, view, th)
		}
		if th.rule != "" {
			p.raw(`<div style="`, th.rule, `;margin-bottom:3rem"></div>`)
		}
		writeBillTo(p, view, th)
		writeItems(p, view, th)
		writeTotals(p, view, th)
		if th.showFooter {
			p.raw(`<footer class="invoice-footer" style="margin-top:8rem;padding-top:3rem;border-top:1px solid #f1f5f9;display:flex;justify-content:space-between;opacity:.4;font-size:10px;font-weight:900;text-transform:uppercase;letter-spacing:.1em">`)
			p.raw(`<span>`, ProductName, `</span><span>Fast &amp; Private Invoicing</span></footer>`)
		}
		p.raw(`</article>`)
		return p.err
	})
}

func writeLogo(p *printer, view InvoiceView, alt string) bool {
	logo := SafeLogoURL(view.Details.LogoURL)
	if logo == "" {
		return false
	}
	p.raw(`<img class="logo" src="`, templ.EscapeString(logo), `" alt="`, alt, `" style="max-height:100px;max-width:240px;object-fit:contain">`)
	return true
}

func writeBandHeader(p *printer, view InvoiceView, th theme) {
	d := view.Details
	p.raw(`<header style="background:#0f172a;color:#fff;padding:4rem;margin-bottom:3rem;display:flex;justify-content:space-between;align-items:center">`)
	p.raw(`<div><h1 style="font-size:3rem;margin:0;`, th.heading, `">Invoice</h1>`)
	p.raw(`<p style="color:#818cf8;font-weight:700;text-transform:uppercase;letter-spacing:.1em">Ref: `)
	p.text(d.InvoiceNumber)
	p.raw(`</p></div><div>`)
	if !writeLogo(p, view, "Logo") {
		p.raw(`<span class="product-mark" style="font-size:1.5rem;`, th.heading, `">`, ProductName, `</span>`)
	}
	p.raw(`</div></header>`)

	p.raw(`<section style="display:flex;justify-content:space-between;margin-bottom:3rem">`)
	writeSender(p, d, th)
	writeDates(p, d, th)
	p.raw(`</section>`)
}

func writeHeader(p *printer, view InvoiceView, th theme) {
	d := view.Details
	p.raw(`<header style="display:flex;justify-content:space-between;gap:3rem;margin-bottom:4rem"><div>`)
	hasLogo := writeLogo(p, view, "Business Logo")
	if !hasLogo {
		p.raw(`<div class="product-mark"><h1 style="font-size:2.5rem;margin:0;`, th.heading, `">Invoice</h1>`)
		p.raw(`<p style="font-size:10px;font-weight:700;color:`, th.accent, `;text-transform:uppercase;letter-spacing:.1em">Professional Billing</p></div>`)
	}
	writeSender(p, d, th)
	p.raw(`</div><div style="text-align:right">`)
	if hasLogo {
		p.raw(`<h1 style="font-size:2.5rem;margin:0;`, th.heading, `">Invoice</h1>`)
		p.raw(`<p style="font-size:10px;font-weight:700;color:`, th.accent, `;text-transform:uppercase">ID: `)
		p.text(d.InvoiceNumber)
		p.raw(`</p>`)
	} else {
		p.raw(`<p style="font-size:12px;font-weight:700;color:`, th.accent, `;text-transform:uppercase;letter-spacing:.1em">Invoice Number</p>`)
		p.raw(`<p class="invoice-number" style="font-size:1.5rem;font-weight:900">`)
		p.text(d.InvoiceNumber)
		p.raw(`</p>`)
	}
	writeDates(p, d, th)
	p.raw(`</div></header>`)
}

func writeSender(p *printer, d core.InvoiceDetails, th theme) {
	p.raw(`<div class="sender" style="font-size:.875rem">`)
	style := "font-weight:700;font-size:1.125rem"
	if th.italicMeta {
		style = "font-style:italic;font-size:1.25rem"
	}
	p.raw(`<p style="`, style, `">`)
	p.text(orDefault(d.SenderName, SenderNamePlaceholder))
	p.raw(`</p><p style="white-space:pre-line;color:#475569">`)
	p.text(orDefault(d.SenderAddress, SenderAddressPlaceholder))
	p.raw(`</p></div>`)
}

func writeDates(p *printer, d core.InvoiceDetails, th theme) {
	style := ""
	if th.italicMeta {
		style = "font-style:italic"
	}
	p.raw(`<dl class="dates" style="display:grid;grid-template-columns:1fr 1fr;gap:2rem;`, style, `">`)
	p.raw(`<div><dt style="font-size:12px;font-weight:700;color:#94a3b8;text-transform:uppercase">Issued</dt><dd style="margin:0;font-weight:700">`)
	p.text(d.Date)
	p.raw(`</dd></div><div><dt style="font-size:12px;font-weight:700;color:#94a3b8;text-transform:uppercase">Due</dt><dd style="margin:0;font-weight:700">`)
	p.text(d.DueDate)
	p.raw(`</dd></div></dl>`)
}

func writeBillTo(p *printer, view InvoiceView, th theme) {
	d := view.Details
	p.raw(`<section style="display:grid;grid-template-columns:1fr 1fr;gap:2rem;margin-bottom:4rem">`)
	p.raw(`<div class="bill-to" style="`, th.billTo, `"><p style="font-size:12px;font-weight:700;color:#94a3b8;text-transform:uppercase">Bill To</p>`)
	p.raw(`<p style="font-size:1.75rem;font-weight:900;margin:0">`)
	p.text(orDefault(d.ClientName, ClientNamePlaceholder))
	p.raw(`</p><p style="white-space:pre-line;color:#475569;font-size:.875rem">`)
	p.text(orDefault(d.ClientAddress, ClientAddressPlaceholder))
	p.raw(`</p></div>`)

	if d.ShowProjectSummary {
		p.raw(`<div class="time-breakdown" style="background:#f8fafc;border:1px solid #f1f5f9;padding:1.5rem;border-radius:1rem">`)
		p.raw(`<p style="font-size:12px;font-weight:700;color:`, th.accent, `;text-transform:uppercase">Time Breakdown</p>`)
		for _, ph := range view.Projects {
			p.raw(`<div style="display:flex;justify-content:space-between;font-size:.875rem"><span>`)
			p.text(ph.Project)
			p.raw(`</span><span style="font-weight:900">`, FormatHours(ph.Hours), `</span></div>`)
		}
		p.raw(`</div>`)
	}
	p.raw(`</section>`)
}

func writeItems(p *printer, view InvoiceView, th theme) {
	cur := view.Details.Currency
	p.raw(`<table class="items" style="width:100%;border-collapse:collapse;margin-bottom:4rem">`)
	p.raw(`<thead><tr style="`, th.tableHead, `">`)
	for _, h := range []string{"Work Item", "Hours", "Rate", "Total"} {
		align := "right"
		if h == "Work Item" {
			align = "left"
		}
		p.raw(`<th style="padding:1rem;font-size:12px;text-transform:uppercase;letter-spacing:.1em;text-align:`, align, `">`, h, `</th>`)
	}
	p.raw(`</tr></thead><tbody>`)
	for _, item := range view.Items {
		p.raw(`<tr style="border-bottom:1px solid #f1f5f9"><td style="padding:1.5rem 1rem"><p style="margin:0;`, th.itemTitle, `">`)
		p.text(item.Description)
		p.raw(`</p><p style="margin:.25rem 0 0;font-size:12px;font-weight:700;text-transform:uppercase;color:`, th.accent, `">`)
		p.text(item.Project)
		p.raw(`</p></td>`)
		p.raw(`<td style="text-align:right">`, FormatHours(item.Quantity), `</td>`)
		p.raw(`<td style="text-align:right">`)
		p.text(FormatMoney(cur, item.Rate))
		p.raw(`</td><td style="text-align:right;font-weight:900">`)
		p.text(FormatMoney(cur, item.Total))
		p.raw(`</td></tr>`)
	}
	p.raw(`</tbody></table>`)
}

func writeTotals(p *printer, view InvoiceView, th theme) {
	d := view.Details
	p.raw(`<section class="totals" style="display:flex;justify-content:space-between;gap:4rem;padding-top:2.5rem;border-top:1px solid #f1f5f9">`)
	p.raw(`<div style="flex:1"><p style="font-size:12px;font-weight:700;color:#94a3b8;text-transform:uppercase">Service Summary &amp; Notes</p>`)
	p.raw(`<div class="notes" style="font-style:italic;color:#475569;background:#f8fafc;padding:1.25rem;border-radius:.75rem">`)
	p.text(orDefault(d.Notes, core.FallbackSummary))
	p.raw(`</div></div><div style="width:20rem">`)

	row := func(label, value string) {
		p.raw(`<div style="display:flex;justify-content:space-between;font-size:.875rem"><span style="font-size:10px;font-weight:700;text-transform:uppercase;color:#64748b">`)
		p.text(label)
		p.raw(`</span><span style="font-weight:700">`)
		p.text(value)
		p.raw(`</span></div>`)
	}
	row("Subtotal", FormatMoney(d.Currency, view.Totals.Subtotal))
	row("Tax ("+FormatPercent(d.TaxRate)+"%)", FormatMoney(d.Currency, view.Totals.Tax))

	p.raw(`<div style="padding-top:1.5rem;border-top:2px solid #0f172a;display:flex;justify-content:space-between;align-items:baseline">`)
	p.raw(`<span style="`, th.heading, `">Total Due</span><span class="total-due" style="font-size:1.875rem;font-weight:900;color:`, th.accent, `">`)
	p.text(FormatMoney(d.Currency, view.Totals.Total))
	p.raw(`</span></div></div></section>`)
}

// Page renders a standalone HTML document around Invoice with print styles.
func Page(view InvoiceView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(strings.TrimSpace("Invoice " + view.Details.InvoiceNumber))
		p.raw(`</title><style>`, pageCSS, `</style></head><body><main class="sheet">`)
		if p.err != nil {
			return p.err
		}
		if err := Invoice(view).Render(ctx, w); err != nil {
			return err
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

const pageCSS = `*{box-sizing:border-box}` +
	`body{margin:0;background:#f1f5f9}` +
	`.sheet{max-width:56rem;margin:2rem auto;background:#fff;padding:4rem;box-shadow:0 1px 3px rgba(0,0,0,.1)}` +
	`@page{size:A4;margin:0}` +
	`@media print{body{background:#fff}.sheet{margin:0;box-shadow:none;max-width:none}}`
