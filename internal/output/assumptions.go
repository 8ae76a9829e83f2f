package output

import (
	"fmt"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// DefaultNotes lists the statutory rules rendered in detailed outputs.
var DefaultNotes = []string{
	"Deposit due: 7th of the following month; 30th April for March deductions",
	"Property sections (194IA, 194IB): 30 days from the end of the month of deduction",
	"Late deposit interest: 1.5% per month or part month under Section 201(1A)",
	"Amounts are rounded to the nearest paisa, halves away from zero",
	"An invalid or missing PAN attracts the section's no-PAN rate",
}

// GenerateNotes adds the report's rule table and interest convention to DefaultNotes
func GenerateNotes(report *domain.BatchReport) []string {
	notes := append([]string(nil), DefaultNotes...)
	if report.RegistryVersion != "" {
		notes = append(notes, fmt.Sprintf("Rule table version: %s", report.RegistryVersion))
	}
	switch report.Convention {
	case "inclusive":
		notes = append(notes, "Interest months count the month of deduction and the month of payment")
	case "", "elapsed":
		notes = append(notes, "Interest months are counted from the month of deduction to the month of payment")
	}
	return notes
}
