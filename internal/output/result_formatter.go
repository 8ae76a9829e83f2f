package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// FormatResult renders a single calculation, as shown by the calculate
// command. format is "console" (or an alias) or "json".
func FormatResult(r domain.CalculationResult, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "summary":
		return resultDetail(r), nil
	case "json":
		return json.MarshalIndent(r, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q for a single result (use console or json)", ErrUnsupportedFormat, format)
	}
}

func resultDetail(r domain.CalculationResult) []byte {
	var buf bytes.Buffer
	line := func(label, value string) { fmt.Fprintf(&buf, "%-18s %s\n", label+":", value) }

	fmt.Fprintln(&buf, "TDS CALCULATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	if r.DeducteeName != "" {
		line("Deductee", r.DeducteeName)
	}
	line("PAN", r.DisplayPAN())
	if r.IsError() {
		line("Section", r.Section)
		line("Amount", FormatCurrency(r.Amount))
		line("Status", r.Status)
		return buf.Bytes()
	}

	line("Category", r.Category.ShortName())
	line("Section", fmt.Sprintf("%s (%s)", r.Section, r.Description))
	line("Amount", FormatCurrency(r.Amount))
	line("Threshold", r.ThresholdLabel)
	line("Rate", r.RateLabel)
	line("Taxable Base", FormatCurrency(r.TaxableBase))
	line("TDS Amount", FormatCurrency(r.TDSAmount))
	line("Status", r.Status)
	fmt.Fprintln(&buf)

	line("Deduction Date", FormatDate(r.DeductionDate))
	due := FormatDatePtr(r.DueDate)
	if r.DueDateRule != "" {
		due += " (" + r.DueDateRule + ")"
	}
	line("Due Date", due)
	line("Payment Date", FormatDatePtr(r.PaymentDate))
	line("Late", boolToString(r.IsLate))
	if r.IsLate {
		line("Months Late", intToString(r.MonthsLate))
	}
	line("Interest", FormatCurrency(r.Interest))
	line("Total Payable", FormatCurrency(r.TotalPayable))
	if r.FiscalYear != "" {
		line("Fiscal Year", r.FiscalYear)
	}
	return buf.Bytes()
}
