package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// TableFromRegistry converts a registry back into its on-disk form
func TableFromRegistry(reg *domain.Registry) *RuleTable {
	table := &RuleTable{
		Metadata: RuleMetadata{
			Version:    reg.Version,
			FiscalYear: reg.FiscalYear,
		},
		Interest: InterestRules{RatePerMonth: decimalString(&reg.InterestRatePerMonth)},
	}
	if !reg.EffectiveFrom.IsZero() {
		table.Metadata.EffectiveFrom = reg.EffectiveFrom.Format(dateLayout)
	}
	if !reg.EffectiveTo.IsZero() {
		table.Metadata.EffectiveTo = reg.EffectiveTo.Format(dateLayout)
	}

	for _, s := range reg.Sections() {
		rec := SectionRecord{
			Code:            s.Code,
			Description:     s.Description,
			NoPANRate:       decimalString(&s.NoPANRate),
			PropertySection: s.PropertySection,
			TaxOnExcess:     s.TaxOnExcess,
			Cumulative:      s.Cumulative,
		}

		switch r := s.Rate.(type) {
		case domain.FlatRate:
			setFlat(&rec, r)
		case domain.ConditionalRate:
			setFlat(&rec, r.FlatRate)
			for _, c := range r.Conditions {
				rate := c.Rate
				rec.Conditions = append(rec.Conditions, ConditionRecord{Condition: c.Condition, Rate: decimalString(&rate)})
			}
		case domain.SlabRate:
			for _, sl := range r.Slabs {
				rate := sl.Rate
				rec.Slabs = append(rec.Slabs, SlabRecord{
					Description: sl.Description,
					Rate:        decimalString(&rate),
					From:        moneyString(sl.From),
					To:          moneyString(sl.To),
				})
			}
		}

		switch t := s.Threshold.(type) {
		case domain.SingleThreshold:
			rec.Threshold = moneyString(&t.Amount)
			rec.ThresholdLabel = t.Label
		case domain.NoThreshold:
			rec.ThresholdLabel = t.Label
		case domain.MultiThreshold:
			types := &ThresholdTypesRecord{Default: t.Default}
			for _, tt := range t.Types {
				amount := tt.Amount
				types.Types = append(types.Types, ThresholdTypeRecord{Type: tt.Type, Threshold: moneyString(&amount), Label: tt.Label})
			}
			rec.ThresholdTypes = types
		}

		table.Sections = append(table.Sections, rec)
	}
	return table
}

// SaveToFile writes a registry as a YAML rule table that LoadFromFile accepts
func (ip *InputParser) SaveToFile(reg *domain.Registry, filename string) error {
	data, err := yaml.Marshal(TableFromRegistry(reg))
	if err != nil {
		return fmt.Errorf("failed to encode rule table: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

func setFlat(rec *SectionRecord, f domain.FlatRate) {
	rec.CompanyRate = decimalString(f.Company)
	rec.IndividualRate = decimalString(f.Individual)
	rec.CompanyRateNote = f.CompanyNote
	rec.IndividualRateNote = f.IndividualNote
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func moneyString(m *dec.Money) *string {
	if m == nil {
		return nil
	}
	s := m.Decimal.String()
	return &s
}
