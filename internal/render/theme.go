package render

import "github.com/MichaelReichel/clock2doc/internal/core"

// theme holds the styling that differs between templates.
type theme struct {
	font       string
	heading    string // invoice title and total label
	accent     string
	rule       string // divider under the header
	headerBand bool   // dark full-width header
	itemTitle  string
	tableHead  string
	billTo     string
	showFooter bool
	italicMeta bool
}

var themes = map[core.Template]theme{
	core.TemplateModern: {
		font:       `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Helvetica, Arial, sans-serif`,
		heading:    "font-weight:900;text-transform:uppercase;letter-spacing:-0.05em",
		accent:     "#4f46e5",
		rule:       "height:2px;background:#0f172a",
		itemTitle:  "font-weight:700",
		tableHead:  "background:#f8fafc;color:#64748b;border-top:1px solid #e2e8f0;border-bottom:1px solid #e2e8f0",
		showFooter: true,
	},
	core.TemplateClassic: {
		font:       `Georgia, "Times New Roman", serif`,
		heading:    "font-weight:400;text-transform:uppercase",
		accent:     "#4f46e5",
		rule:       "height:1px;background:#e2e8f0",
		itemTitle:  "font-style:italic;font-size:1.25rem",
		tableHead:  "background:#f8fafc;color:#64748b;border-top:1px solid #e2e8f0;border-bottom:1px solid #e2e8f0",
		showFooter: true,
		italicMeta: true,
	},
	core.TemplateBold: {
		font:       `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Helvetica, Arial, sans-serif`,
		heading:    "font-weight:900;text-transform:uppercase;letter-spacing:-0.05em",
		accent:     "#4f46e5",
		headerBand: true,
		itemTitle:  "font-weight:900;font-size:1.125rem",
		tableHead:  "background:#0f172a;color:#818cf8",
		billTo:     "background:#f8fafc;padding:2rem;border-radius:1rem;border-left:8px solid #4f46e5",
	},
}

func themeFor(t core.Template) theme {
	if th, ok := themes[t]; ok {
		return th
	}
	return themes[core.TemplateModern]
}
