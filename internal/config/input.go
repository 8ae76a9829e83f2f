package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

//go:embed data/tds_fy2025_26.yaml
var defaultRuleTable []byte

const dateLayout = "2006-01-02"

// InputParser loads and validates rule tables
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRegistry loads the rule table at path, or the embedded FY 2025-26 table
// when path is empty
func LoadRegistry(path string) (*domain.Registry, error) {
	ip := NewInputParser()
	if strings.TrimSpace(path) == "" {
		return ip.LoadDefault()
	}
	return ip.LoadFromFile(path)
}

// DefaultRuleTable returns a copy of the embedded rule table
func DefaultRuleTable() []byte {
	out := make([]byte, len(defaultRuleTable))
	copy(out, defaultRuleTable)
	return out
}

// LoadDefault builds the registry from the embedded rule table
func (ip *InputParser) LoadDefault() (*domain.Registry, error) {
	reg, err := ip.Parse(defaultRuleTable)
	if err != nil {
		return nil, fmt.Errorf("embedded rule table: %w", err)
	}
	return reg, nil
}

// LoadFromFile loads a rule table from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	reg, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", filename, err)
	}
	return reg, nil
}

// Parse decodes, validates and converts a YAML rule table
func (ip *InputParser) Parse(data []byte) (*domain.Registry, error) {
	var table RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRuleTable(&table); err != nil {
		return nil, fmt.Errorf("rule table validation failed: %w", err)
	}

	return ip.BuildRegistry(&table)
}

// ValidateRuleTable checks the record-level shape of a rule table. Structural
// invariants of each section are checked again when the registry is built.
func (ip *InputParser) ValidateRuleTable(table *RuleTable) error {
	if strings.TrimSpace(table.Metadata.Version) == "" {
		return fmt.Errorf("%w: metadata.version is required", domain.ErrInvalidRegistry)
	}
	if table.Interest.RatePerMonth == nil {
		return fmt.Errorf("%w: interest.rate_per_month is required", domain.ErrInvalidRegistry)
	}
	if len(table.Sections) == 0 {
		return fmt.Errorf("%w: no sections provided", domain.ErrInvalidRegistry)
	}

	for i := range table.Sections {
		if err := ip.validateSection(&table.Sections[i]); err != nil {
			return fmt.Errorf("section %d (%s): %w", i, table.Sections[i].Code, err)
		}
	}
	return nil
}

func (ip *InputParser) validateSection(rec *SectionRecord) error {
	if strings.TrimSpace(rec.Code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidRegistry)
	}
	if rec.NoPANRate == nil {
		return fmt.Errorf("%w: no_pan_rate is required", domain.ErrInvalidRegistry)
	}
	if len(rec.Slabs) > 0 {
		if rec.CompanyRate != nil || rec.IndividualRate != nil {
			return fmt.Errorf("%w: slab sections cannot carry category rates", domain.ErrInvalidRegistry)
		}
		if len(rec.Conditions) > 0 {
			return fmt.Errorf("%w: slab sections cannot carry conditions", domain.ErrInvalidRegistry)
		}
	}
	if rec.Threshold != nil && rec.ThresholdTypes != nil {
		return fmt.Errorf("%w: threshold and threshold_types are mutually exclusive", domain.ErrInvalidRegistry)
	}
	return nil
}

// BuildRegistry converts a validated rule table into a registry
func (ip *InputParser) BuildRegistry(table *RuleTable) (*domain.Registry, error) {
	info, err := ip.buildInfo(table)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.Section, 0, len(table.Sections))
	for i := range table.Sections {
		s, err := ip.buildSection(&table.Sections[i])
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", table.Sections[i].Code, err)
		}
		sections = append(sections, s)
	}

	return domain.NewRegistry(info, sections)
}

func (ip *InputParser) buildInfo(table *RuleTable) (domain.RegistryInfo, error) {
	info := domain.RegistryInfo{
		Version:    table.Metadata.Version,
		FiscalYear: table.Metadata.FiscalYear,
	}
	var err error
	if info.EffectiveFrom, err = parseDate("metadata.effective_from", table.Metadata.EffectiveFrom); err != nil {
		return info, err
	}
	if info.EffectiveTo, err = parseDate("metadata.effective_to", table.Metadata.EffectiveTo); err != nil {
		return info, err
	}
	if !info.EffectiveFrom.IsZero() && !info.EffectiveTo.IsZero() && info.EffectiveTo.Before(info.EffectiveFrom) {
		return info, fmt.Errorf("%w: effective_to before effective_from", domain.ErrInvalidRegistry)
	}
	rate, err := parseDecimal("interest.rate_per_month", table.Interest.RatePerMonth)
	if err != nil {
		return info, err
	}
	if rate != nil {
		info.InterestRatePerMonth = *rate
	}
	return info, nil
}

func (ip *InputParser) buildSection(rec *SectionRecord) (domain.Section, error) {
	s := domain.Section{
		Code:            strings.TrimSpace(rec.Code),
		Description:     rec.Description,
		PropertySection: rec.PropertySection,
		TaxOnExcess:     rec.TaxOnExcess,
		Cumulative:      rec.Cumulative,
	}

	noPAN, err := parseDecimal("no_pan_rate", rec.NoPANRate)
	if err != nil {
		return s, err
	}
	s.NoPANRate = *noPAN

	if s.Rate, err = buildRate(rec); err != nil {
		return s, err
	}
	if s.Threshold, err = buildThreshold(rec); err != nil {
		return s, err
	}
	return s, nil
}

func buildRate(rec *SectionRecord) (domain.RateRule, error) {
	if len(rec.Slabs) > 0 {
		slabs := make([]domain.Slab, 0, len(rec.Slabs))
		for _, sr := range rec.Slabs {
			rate, err := requireDecimal("slab rate", sr.Rate)
			if err != nil {
				return nil, err
			}
			from, err := parseMoney("slab from", sr.From)
			if err != nil {
				return nil, err
			}
			to, err := parseMoney("slab to", sr.To)
			if err != nil {
				return nil, err
			}
			slabs = append(slabs, domain.Slab{Description: sr.Description, Rate: rate, From: from, To: to})
		}
		return domain.SlabRate{Slabs: slabs}, nil
	}

	company, err := parseDecimal("company_rate", rec.CompanyRate)
	if err != nil {
		return nil, err
	}
	individual, err := parseDecimal("individual_rate", rec.IndividualRate)
	if err != nil {
		return nil, err
	}
	flat := domain.FlatRate{
		Company:        company,
		Individual:     individual,
		CompanyNote:    rec.CompanyRateNote,
		IndividualNote: rec.IndividualRateNote,
	}

	if len(rec.Conditions) == 0 {
		return flat, nil
	}
	conditions := make([]domain.Condition, 0, len(rec.Conditions))
	for _, cr := range rec.Conditions {
		rate, err := requireDecimal("condition rate", cr.Rate)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, domain.Condition{Condition: cr.Condition, Rate: rate})
	}
	return domain.ConditionalRate{FlatRate: flat, Conditions: conditions}, nil
}

func buildThreshold(rec *SectionRecord) (domain.ThresholdRule, error) {
	if rec.ThresholdTypes != nil {
		types := make([]domain.ThresholdType, 0, len(rec.ThresholdTypes.Types))
		for _, tr := range rec.ThresholdTypes.Types {
			amount, err := parseMoney("threshold type "+tr.Type, tr.Threshold)
			if err != nil {
				return nil, err
			}
			if amount == nil {
				return nil, fmt.Errorf("%w: threshold type %q has no threshold", domain.ErrInvalidRegistry, tr.Type)
			}
			types = append(types, domain.ThresholdType{Type: tr.Type, Amount: *amount, Label: tr.Label})
		}
		return domain.MultiThreshold{Default: rec.ThresholdTypes.Default, Types: types}, nil
	}

	amount, err := parseMoney("threshold", rec.Threshold)
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return domain.NoThreshold{Label: rec.ThresholdLabel}, nil
	}
	label := rec.ThresholdLabel
	if label == "" {
		label = amount.Format()
	}
	return domain.SingleThreshold{Amount: *amount, Label: label}, nil
}

func parseDecimal(field string, v *string) (*decimal.Decimal, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*v))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a number", domain.ErrInvalidRegistry, field, *v)
	}
	return &d, nil
}

func requireDecimal(field string, v *string) (decimal.Decimal, error) {
	d, err := parseDecimal(field, v)
	if err != nil {
		return decimal.Zero, err
	}
	if d == nil {
		return decimal.Zero, fmt.Errorf("%w: %s is required", domain.ErrInvalidRegistry, field)
	}
	return *d, nil
}

func parseMoney(field string, v *string) (*dec.Money, error) {
	d, err := parseDecimal(field, v)
	if err != nil || d == nil {
		return nil, err
	}
	m := dec.NewMoneyFromDecimal(*d)
	return &m, nil
}

func parseDate(field, v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %q is not a YYYY-MM-DD date", domain.ErrInvalidRegistry, field, v)
	}
	return t, nil
}
