package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RegistryInfo describes the rule table a registry was built from
type RegistryInfo struct {
	Version              string          `json:"version"`
	FiscalYear           string          `json:"fiscal_year"`
	EffectiveFrom        time.Time       `json:"effective_from"`
	EffectiveTo          time.Time       `json:"effective_to"`
	InterestRatePerMonth decimal.Decimal `json:"interest_rate_per_month"`
}

// Covers reports whether a date falls inside the table's validity window.
// A table without a window covers every date.
func (ri RegistryInfo) Covers(date time.Time) bool {
	if !ri.EffectiveFrom.IsZero() && date.Before(ri.EffectiveFrom) {
		return false
	}
	if !ri.EffectiveTo.IsZero() && date.After(ri.EffectiveTo) {
		return false
	}
	return true
}

// Registry is the read-only catalog of sections. It is safe for concurrent use.
type Registry struct {
	RegistryInfo

	sections []Section
	index    map[string]int
}

// NewRegistry validates every section and builds the lookup index.
// Codes are unique case-insensitively.
func NewRegistry(info RegistryInfo, sections []Section) (*Registry, error) {
	if info.InterestRatePerMonth.IsNegative() {
		return nil, fmt.Errorf("%w: negative interest rate", ErrInvalidRegistry)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrInvalidRegistry)
	}

	r := &Registry{
		RegistryInfo: info,
		sections:     make([]Section, 0, len(sections)),
		index:        make(map[string]int, len(sections)),
	}
	for i := range sections {
		s := sections[i]
		s.Code = strings.TrimSpace(s.Code)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		key := normalizeCode(s.Code)
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate section code %s", ErrInvalidRegistry, s.Code)
		}
		r.index[key] = len(r.sections)
		r.sections = append(r.sections, s)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for tables that are known good, such as the embedded default
func MustNewRegistry(info RegistryInfo, sections []Section) *Registry {
	r, err := NewRegistry(info, sections)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a section by code, ignoring case and surrounding space
func (r *Registry) Lookup(code string) (*Section, error) {
	i, ok := r.index[normalizeCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, strings.TrimSpace(code))
	}
	return &r.sections[i], nil
}

// Sections returns every section in table order
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// Len returns the number of sections
func (r *Registry) Len() int {
	return len(r.sections)
}

// Search returns sections whose code or description contains query, in table
// order. An empty query returns everything.
func (r *Registry) Search(query string) []Section {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.Sections()
	}
	var out []Section
	for _, s := range r.sections {
		if strings.Contains(strings.ToLower(s.Code), q) || strings.Contains(strings.ToLower(s.Description), q) {
			out = append(out, s)
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
