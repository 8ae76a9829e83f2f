package output

import (
	"sort"

	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// SectionTotal aggregates the rows of one section
type SectionTotal struct {
	Section  string    `json:"section"`
	Rows     int       `json:"rows"`
	Amount   dec.Money `json:"amount"`
	TDS      dec.Money `json:"tds"`
	Interest dec.Money `json:"interest"`
}

// AnalyzeSections totals results per section, largest TDS first. Error rows
// are left out.
func AnalyzeSections(report *domain.BatchReport) []SectionTotal {
	index := make(map[string]int)
	var totals []SectionTotal
	for _, r := range report.Results {
		if r.IsError() {
			continue
		}
		i, ok := index[r.Section]
		if !ok {
			i = len(totals)
			index[r.Section] = i
			totals = append(totals, SectionTotal{Section: r.Section, Amount: dec.Zero(), TDS: dec.Zero(), Interest: dec.Zero()})
		}
		t := &totals[i]
		t.Rows++
		t.Amount = t.Amount.Add(r.Amount)
		t.TDS = t.TDS.Add(r.TDSAmount)
		t.Interest = t.Interest.Add(r.Interest)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if !totals[i].TDS.Equal(totals[j].TDS) {
			return totals[i].TDS.GreaterThan(totals[j].TDS)
		}
		return totals[i].Section < totals[j].Section
	})
	return totals
}

// SummaryRow is one label/value line of a batch summary
type SummaryRow struct {
	Label string
	Value string
}

// SummaryRows lays out the batch summary for tabular formatters
func SummaryRows(s domain.BatchSummary) []SummaryRow {
	return []SummaryRow{
		{"Total Transactions", intToString(s.Rows)},
		{"Taxable", intToString(s.Taxable)},
		{"Under Threshold", intToString(s.UnderThreshold)},
		{"Not Applicable", intToString(s.NotApplicable)},
		{"Errors", intToString(s.Errors)},
		{"Late Deposits", intToString(s.Late)},
		{"Total Amount", FormatCurrency(s.TotalAmount)},
		{"Total TDS", FormatCurrency(s.TotalTDS)},
		{"Total Interest", FormatCurrency(s.TotalInterest)},
		{"Total Payable", FormatCurrency(s.TotalPayable)},
	}
}
