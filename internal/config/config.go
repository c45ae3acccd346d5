// Package config loads invoice house settings from YAML. The embedded default carries the
// company, house client and banking profiles; a user file overrides any subset of it.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gompdf/gominvoice/internal/pagination"
	"github.com/gompdf/gominvoice/pkg/invoice"
)

//go:embed default.yaml
var defaultYAML []byte

// Currency is the marker and code printed with amounts.
type Currency struct {
	Symbol string `yaml:"symbol"`
	Code   string `yaml:"code"`
}

// Config is the house configuration of the composer.
type Config struct {
	Company invoice.CompanyProfile `yaml:"company"`
	// Client is the house client billed when a request names none.
	Client  *invoice.ClientProfile `yaml:"client"`
	Banking invoice.BankingProfile `yaml:"banking"`

	TaxRate  float64  `yaml:"tax_rate"`
	TaxLabel string   `yaml:"tax_label"`
	Currency Currency `yaml:"currency"`

	PaymentTerms  []string `yaml:"payment_terms"`
	ClosingRemark string   `yaml:"closing_remark"`

	OutputDir string            `yaml:"output_dir"`
	Numbering invoice.Numbering `yaml:"numbering"`
	PageSize  string            `yaml:"page_size"`
	Footer    string            `yaml:"footer"`

	// Stylesheet is a local path or data URL of a theme appended to the default.
	Stylesheet string `yaml:"stylesheet,omitempty"`
	// ResourcePaths are searched for the logo and stylesheet.
	ResourcePaths []string `yaml:"resource_paths,omitempty"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// Load reads a YAML file over the embedded default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over base, or over an empty config when base is nil, and
// validates the result. Keys absent from data keep the base value; a profile present in
// data replaces the base profile as a whole.
func Parse(data []byte, base *Config) (*Config, error) {
	cfg := &Config{}
	if base != nil {
		cfg = base.clone()
	}

	var present map[string]yaml.Node
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if _, ok := present["company"]; ok {
		cfg.Company = invoice.CompanyProfile{}
	}
	if _, ok := present["client"]; ok {
		cfg.Client = nil
	}
	if _, ok := present["banking"]; ok {
		cfg.Banking = invoice.BankingProfile{}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if cfg.Client != nil && cfg.Client.IsZero() {
		cfg.Client = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) clone() *Config {
	out := *c
	if c.Client != nil {
		client := *c.Client
		out.Client = &client
	}
	out.PaymentTerms = append([]string(nil), c.PaymentTerms...)
	out.ResourcePaths = append([]string(nil), c.ResourcePaths...)
	return &out
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Company.Name) == "" {
		errs = append(errs, errors.New("company.name is required"))
	}
	if math.IsNaN(c.TaxRate) || math.IsInf(c.TaxRate, 0) || c.TaxRate < 0 {
		errs = append(errs, fmt.Errorf("tax_rate must be a non-negative number, got %v", c.TaxRate))
	}
	if c.TaxRate > 1 {
		errs = append(errs, fmt.Errorf("tax_rate is a fraction, got %v", c.TaxRate))
	}
	if !c.Numbering.Valid() {
		errs = append(errs, fmt.Errorf("numbering must be %q or %q, got %q",
			invoice.NumberingTimestamp, invoice.NumberingUUID, c.Numbering))
	}
	if c.Footer != "" && strings.Count(c.Footer, "%d") != 2 {
		errs = append(errs, fmt.Errorf("footer must contain two %%d verbs, got %q", c.Footer))
	}
	if c.PageSize != "" {
		if _, ok := pagination.LookupPageSize(c.PageSize); !ok {
			errs = append(errs, fmt.Errorf("page_size %q is not a known size", c.PageSize))
		}
	}
	return errors.Join(errs...)
}
