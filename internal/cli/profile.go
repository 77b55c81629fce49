package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"gopkg.in/yaml.v3"
)

// Party is a sender or client block on an invoice.
type Party struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Profile holds the invoice settings kept in a YAML file between runs.
//
//	sender:
//	  name: Jane Doe Consulting
//	  address: |
//	    1 Main St
//	    Springfield
//	client:
//	  name: Acme Corp
//	hourlyRate: 120
//	taxRate: 19
//	template: classic
type Profile struct {
	InvoiceNumber      string   `yaml:"invoiceNumber"`
	Sender             Party    `yaml:"sender"`
	Client             Party    `yaml:"client"`
	Currency           string   `yaml:"currency"`
	HourlyRate         *float64 `yaml:"hourlyRate"`
	TaxRate            float64  `yaml:"taxRate"`
	Notes              string   `yaml:"notes"`
	DueDays            int      `yaml:"dueDays"`
	Template           string   `yaml:"template"`
	LogoURL            string   `yaml:"logoUrl"`
	ShowProjectSummary bool     `yaml:"showProjectSummary"`
}

// LoadProfile reads a profile from path. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks rates and the template name.
func (p *Profile) Validate() error {
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate %v", core.ErrInvalidRate, *p.HourlyRate)
	}
	if p.TaxRate < 0 {
		return fmt.Errorf("%w: tax rate %v", core.ErrInvalidRate, p.TaxRate)
	}
	if p.Template != "" && !core.Template(p.Template).Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidTemplate, p.Template)
	}
	return nil
}

// Rate returns the profile's hourly rate or the default.
func (p *Profile) Rate() float64 {
	if p.HourlyRate == nil {
		return defaultHourlyRate
	}
	return *p.HourlyRate
}

// Details builds invoice details issued at now.
func (p *Profile) Details(now time.Time) core.InvoiceDetails {
	d := core.NewDetails(now, core.DetailsDefaults{
		Currency:      p.Currency,
		HourlyRate:    p.Rate(),
		TaxRate:       p.TaxRate,
		Notes:         p.Notes,
		DueDays:       p.DueDays,
		Template:      core.Template(p.Template),
		SenderName:    p.Sender.Name,
		SenderAddress: p.Sender.Address,
	})

	if p.InvoiceNumber != "" {
		d.InvoiceNumber = p.InvoiceNumber
	}
	d.ClientName = p.Client.Name
	d.ClientAddress = p.Client.Address
	d.LogoURL = p.LogoURL
	d.ShowProjectSummary = p.ShowProjectSummary
	return d
}
