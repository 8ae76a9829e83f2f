package calculation

import (
	"regexp"
	"strings"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// panPattern is five letters, four digits, one letter
var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// panHolderTypes maps the 4th PAN character (holder type) to a rate bucket
var panHolderTypes = map[byte]domain.Category{
	'P': domain.CategoryIndividual, // individual
	'H': domain.CategoryIndividual, // HUF
	'C': domain.CategoryCompany,    // company
	'F': domain.CategoryCompany,    // firm / LLP
	'G': domain.CategoryCompany,    // government
	'L': domain.CategoryCompany,    // local authority
	'J': domain.CategoryCompany,    // artificial juridical person
	'A': domain.CategoryCompany,    // association of persons
	'B': domain.CategoryCompany,    // body of individuals
	'T': domain.CategoryCompany,    // trust
}

// NormalizePAN trims and upper-cases a PAN
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}

// ValidatePAN reports whether pan is a well-formed PAN, ignoring case
func ValidatePAN(pan string) bool {
	return panPattern.MatchString(NormalizePAN(pan))
}

// EffectivePANAvailable downgrades a claimed PAN to "no PAN" when it is malformed
func EffectivePANAvailable(pan string, panAvailable bool) bool {
	return panAvailable && ValidatePAN(pan)
}

// CategoryFromPAN reads the holder type out of a valid PAN
func CategoryFromPAN(pan string) (domain.Category, bool) {
	p := NormalizePAN(pan)
	if !panPattern.MatchString(p) {
		return "", false
	}
	c, ok := panHolderTypes[p[3]]
	return c, ok
}

// ResolveCategory derives the payee category from the PAN, falling back to the
// declared category when the PAN is unavailable, malformed or of an unmapped type.
func ResolveCategory(pan string, panAvailable bool, declared domain.Category) domain.Category {
	if !panAvailable {
		return declared
	}
	if c, ok := CategoryFromPAN(pan); ok {
		return c
	}
	return declared
}
