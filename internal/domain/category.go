package domain

import "strings"

// Category is the payee bucket that selects between company and individual rates
type Category string

const (
	CategoryIndividual Category = "Individual / HUF"
	CategoryCompany    Category = "Company / Firm / Co-operative Society / Local Authority"
)

// companyKeywords mark a declared category as belonging to the company bucket
var companyKeywords = []string{"company", "firm", "co-op", "cooperative", "co-operative", "local authority", "aop", "boi", "trust", "government", "llp"}

// ParseCategory normalises free-form category text. Anything that is not
// recognisably an entity falls into the individual bucket; empty input stays empty.
func ParseCategory(s string) Category {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return ""
	}
	for _, kw := range companyKeywords {
		if strings.Contains(v, kw) {
			return CategoryCompany
		}
	}
	return CategoryIndividual
}

// IsCompany reports whether the category uses the company rate
func (c Category) IsCompany() bool {
	return ParseCategory(string(c)) == CategoryCompany
}

// ShortName is the compact label used in reports
func (c Category) ShortName() string {
	if c.IsCompany() {
		return "Company/Firm"
	}
	return "Individual/HUF"
}

// OrDefault returns the individual bucket when no category was declared
func (c Category) OrDefault() Category {
	if strings.TrimSpace(string(c)) == "" {
		return CategoryIndividual
	}
	return c
}
