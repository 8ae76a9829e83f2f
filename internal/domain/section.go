package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// RateRule is how a section's rate is determined. It is one of FlatRate,
// SlabRate or ConditionalRate.
type RateRule interface {
	rateRule()
}

// FlatRate is a per-category rate. A nil rate means the section does not
// apply to that category.
type FlatRate struct {
	Company        *decimal.Decimal
	Individual     *decimal.Decimal
	CompanyNote    string
	IndividualNote string
}

// Slab is one payment band of a slab-rated section. From and To are optional
// inclusive bounds used to pick the band from the amount.
type Slab struct {
	Description string
	Rate        decimal.Decimal
	From        *dec.Money
	To          *dec.Money
}

// SlabRate rates a payment by band. Category rates are not consulted.
type SlabRate struct {
	Slabs []Slab
}

// Condition is a residency or listing variant of a section's rate
type Condition struct {
	Condition string
	Rate      decimal.Decimal
}

// ConditionalRate is a category rate that a selected condition may override
type ConditionalRate struct {
	FlatRate
	Conditions []Condition
}

func (FlatRate) rateRule()        {}
func (SlabRate) rateRule()        {}
func (ConditionalRate) rateRule() {}

// For returns the category rate and its note
func (f FlatRate) For(category Category) (*decimal.Decimal, string) {
	if category.IsCompany() {
		return f.Company, f.CompanyNote
	}
	return f.Individual, f.IndividualNote
}

// Find looks a slab up by description, ignoring case and surrounding space
func (s SlabRate) Find(description string) (Slab, bool) {
	want := strings.TrimSpace(description)
	for _, slab := range s.Slabs {
		if strings.EqualFold(slab.Description, want) {
			return slab, true
		}
	}
	return Slab{}, false
}

// ForAmount returns the first slab whose bounds contain amount
func (s SlabRate) ForAmount(amount dec.Money) (Slab, bool) {
	for _, slab := range s.Slabs {
		if slab.From == nil && slab.To == nil {
			continue
		}
		if slab.From != nil && amount.LessThan(*slab.From) {
			continue
		}
		if slab.To != nil && amount.GreaterThan(*slab.To) {
			continue
		}
		return slab, true
	}
	return Slab{}, false
}

// Find looks a condition up by its text, ignoring case and surrounding space
func (c ConditionalRate) Find(condition string) (Condition, bool) {
	want := strings.TrimSpace(condition)
	for _, cond := range c.Conditions {
		if strings.EqualFold(cond.Condition, want) {
			return cond, true
		}
	}
	return Condition{}, false
}

// ThresholdRule is the amount below which a section does not deduct. It is one
// of NoThreshold, SingleThreshold or MultiThreshold.
type ThresholdRule interface {
	thresholdRule()
}

// NoThreshold applies the rate to every amount. Label is display text only.
type NoThreshold struct {
	Label string
}

// SingleThreshold gates on one amount
type SingleThreshold struct {
	Amount dec.Money
	Label  string
}

// ThresholdType is one basis of a multi-threshold section
type ThresholdType struct {
	Type   string
	Amount dec.Money
	Label  string
}

// MultiThreshold offers several threshold bases; the caller picks one by type
type MultiThreshold struct {
	Default string
	Types   []ThresholdType
}

func (NoThreshold) thresholdRule()     {}
func (SingleThreshold) thresholdRule() {}
func (MultiThreshold) thresholdRule()  {}

// Find looks a threshold type up by name, ignoring case and surrounding space
func (m MultiThreshold) Find(name string) (ThresholdType, bool) {
	want := strings.TrimSpace(name)
	for _, t := range m.Types {
		if strings.EqualFold(t.Type, want) {
			return t, true
		}
	}
	return ThresholdType{}, false
}

// Resolve returns the named type, falling back to the default type
func (m MultiThreshold) Resolve(name string) ThresholdType {
	if t, ok := m.Find(name); ok {
		return t
	}
	if t, ok := m.Find(m.Default); ok {
		return t
	}
	return m.Types[0]
}

// Section is one statutory TDS section. Sections are immutable once the
// registry is built.
type Section struct {
	Code        string
	Description string
	Rate        RateRule
	Threshold   ThresholdRule
	NoPANRate   decimal.Decimal

	// PropertySection deposits within 30 days of the month end
	PropertySection bool
	// TaxOnExcess deducts on amount - threshold once the threshold is reached
	TaxOnExcess bool
	// Cumulative thresholds are annual aggregates per payee
	Cumulative bool
}

// ResolveThreshold returns the threshold amount (nil when none) and label for
// the chosen threshold type. The type is ignored for single-threshold sections.
func (s *Section) ResolveThreshold(thresholdType string) (*dec.Money, string) {
	switch t := s.Threshold.(type) {
	case SingleThreshold:
		amount := t.Amount
		return &amount, t.Label
	case MultiThreshold:
		chosen := t.Resolve(thresholdType)
		amount := chosen.Amount
		return &amount, chosen.Label
	case NoThreshold:
		if t.Label == "" {
			return nil, "-"
		}
		return nil, t.Label
	default:
		return nil, "-"
	}
}

// ThresholdLabel is the catalog label for the section's default threshold
func (s *Section) ThresholdLabel() string {
	_, label := s.ResolveThreshold("")
	return label
}

// CategoryRates returns the flat company and individual rates, if the section has them
func (s *Section) CategoryRates() (FlatRate, bool) {
	switch r := s.Rate.(type) {
	case FlatRate:
		return r, true
	case ConditionalRate:
		return r.FlatRate, true
	default:
		return FlatRate{}, false
	}
}

// SpecialNotes lists the rule features a catalog reader should know about
func (s *Section) SpecialNotes() []string {
	var notes []string
	if _, ok := s.Threshold.(MultiThreshold); ok {
		notes = append(notes, "Multiple Threshold Types")
	}
	switch s.Rate.(type) {
	case SlabRate:
		notes = append(notes, "Slab-based")
	case ConditionalRate:
		notes = append(notes, "Conditional Rates")
	}
	if s.TaxOnExcess {
		notes = append(notes, "TDS on Excess Amount")
	}
	if s.PropertySection {
		notes = append(notes, "Property (30-day due date)")
	}
	if s.Cumulative {
		notes = append(notes, "Cumulative annual threshold")
	}
	return notes
}

// Validate checks the section's structural invariants
func (s *Section) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return fmt.Errorf("%w: section code is empty", ErrInvalidRegistry)
	}
	if s.NoPANRate.IsNegative() {
		return fmt.Errorf("%w: %s: negative no-PAN rate", ErrInvalidRegistry, s.Code)
	}

	switch r := s.Rate.(type) {
	case FlatRate:
		if err := validateFlat(s.Code, r); err != nil {
			return err
		}
	case ConditionalRate:
		if err := validateFlat(s.Code, r.FlatRate); err != nil {
			return err
		}
		if len(r.Conditions) == 0 {
			return fmt.Errorf("%w: %s: conditional rate without conditions", ErrInvalidRegistry, s.Code)
		}
		seen := make(map[string]bool, len(r.Conditions))
		for _, c := range r.Conditions {
			key := strings.ToLower(strings.TrimSpace(c.Condition))
			if key == "" || seen[key] {
				return fmt.Errorf("%w: %s: empty or duplicate condition %q", ErrInvalidRegistry, s.Code, c.Condition)
			}
			if c.Rate.IsNegative() {
				return fmt.Errorf("%w: %s: negative rate for condition %q", ErrInvalidRegistry, s.Code, c.Condition)
			}
			seen[key] = true
		}
	case SlabRate:
		if len(r.Slabs) == 0 {
			return fmt.Errorf("%w: %s: slab rate without slabs", ErrInvalidRegistry, s.Code)
		}
		for _, slab := range r.Slabs {
			if strings.TrimSpace(slab.Description) == "" {
				return fmt.Errorf("%w: %s: slab without description", ErrInvalidRegistry, s.Code)
			}
			if slab.Rate.IsNegative() {
				return fmt.Errorf("%w: %s: negative rate for slab %q", ErrInvalidRegistry, s.Code, slab.Description)
			}
			if slab.From != nil && slab.To != nil && slab.From.GreaterThan(*slab.To) {
				return fmt.Errorf("%w: %s: slab %q has from above to", ErrInvalidRegistry, s.Code, slab.Description)
			}
		}
	case nil:
		return fmt.Errorf("%w: %s: no rate rule", ErrInvalidRegistry, s.Code)
	}

	hasThreshold := false
	switch t := s.Threshold.(type) {
	case SingleThreshold:
		if t.Amount.IsNegative() {
			return fmt.Errorf("%w: %s: negative threshold", ErrInvalidRegistry, s.Code)
		}
		hasThreshold = true
	case MultiThreshold:
		if len(t.Types) == 0 {
			return fmt.Errorf("%w: %s: multi-threshold without types", ErrInvalidRegistry, s.Code)
		}
		seen := make(map[string]bool, len(t.Types))
		for _, tt := range t.Types {
			key := strings.ToLower(strings.TrimSpace(tt.Type))
			if key == "" || seen[key] {
				return fmt.Errorf("%w: %s: empty or duplicate threshold type %q", ErrInvalidRegistry, s.Code, tt.Type)
			}
			if tt.Amount.IsNegative() {
				return fmt.Errorf("%w: %s: negative threshold for type %q", ErrInvalidRegistry, s.Code, tt.Type)
			}
			seen[key] = true
		}
		if t.Default != "" {
			if _, ok := t.Find(t.Default); !ok {
				return fmt.Errorf("%w: %s: default threshold type %q not defined", ErrInvalidRegistry, s.Code, t.Default)
			}
		}
		hasThreshold = true
	case NoThreshold:
	case nil:
		return fmt.Errorf("%w: %s: no threshold rule", ErrInvalidRegistry, s.Code)
	}

	if s.TaxOnExcess && !hasThreshold {
		return fmt.Errorf("%w: %s: tax on excess requires a threshold", ErrInvalidRegistry, s.Code)
	}
	if s.Cumulative && !hasThreshold {
		return fmt.Errorf("%w: %s: cumulative flag requires a threshold", ErrInvalidRegistry, s.Code)
	}
	return nil
}

func validateFlat(code string, f FlatRate) error {
	if f.Company != nil && f.Company.IsNegative() {
		return fmt.Errorf("%w: %s: negative company rate", ErrInvalidRegistry, code)
	}
	if f.Individual != nil && f.Individual.IsNegative() {
		return fmt.Errorf("%w: %s: negative individual rate", ErrInvalidRegistry, code)
	}
	return nil
}
