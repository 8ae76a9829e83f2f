package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// LabelNotApplicable is the rate label when the section does not apply to the category
const LabelNotApplicable = "Not Applicable"

// FormatRate renders a percentage rate, e.g. "2%" or "0.1%"
func FormatRate(r decimal.Decimal) string {
	return r.String() + "%"
}

// ResolveRate picks the single applicable rate for a transaction. The first
// matching rule wins:
//  1. no PAN: the section's no-PAN rate
//  2. slab section with a known selected slab: the slab rate
//  3. conditional section with a known selected condition: the condition rate
//  4. the category rate, or nil ("Not Applicable") when the section has none
func ResolveRate(section *domain.Section, category domain.Category, panAvailable bool, selectedSlab, selectedCondition string) (*decimal.Decimal, string) {
	if !panAvailable {
		r := section.NoPANRate
		return &r, FormatRate(r) + " (No PAN)"
	}

	switch rule := section.Rate.(type) {
	case domain.SlabRate:
		if selectedSlab != "" {
			if slab, ok := rule.Find(selectedSlab); ok {
				r := slab.Rate
				return &r, FormatRate(r)
			}
		}
		return nil, LabelNotApplicable
	case domain.ConditionalRate:
		if selectedCondition != "" {
			if cond, ok := rule.Find(selectedCondition); ok {
				r := cond.Rate
				return &r, FormatRate(r) + " (" + cond.Condition + ")"
			}
		}
		return categoryRate(rule.FlatRate, category)
	case domain.FlatRate:
		return categoryRate(rule, category)
	default:
		return nil, LabelNotApplicable
	}
}

func categoryRate(f domain.FlatRate, category domain.Category) (*decimal.Decimal, string) {
	rate, note := f.For(category)
	if rate == nil {
		return nil, LabelNotApplicable
	}
	r := *rate
	label := FormatRate(r)
	if note != "" {
		label += " " + note
	}
	return &r, label
}
