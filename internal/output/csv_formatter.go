package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// ResultColumns are the human-readable result columns shared by the CSV and xlsx reports
var ResultColumns = []string{
	"Deductee Name",
	"Deductee PAN",
	"Detected Category",
	"TDS Section",
	"Transaction Amount",
	"Applicable TDS Rate",
	"TDS Amount",
	"Date of Deduction",
	"Due Date for Payment",
	"Date of Payment",
	"Interest",
	"Total Payable",
	"Status",
}

// resultRow renders one result in ResultColumns order. Amounts are plain
// two-place decimals so spreadsheets can total them.
func resultRow(r domain.CalculationResult) []string {
	if r.IsError() {
		return []string{r.DeducteeName, r.DisplayPAN(), "Error", r.Section, r.Amount.String(),
			"Error", "0.00", "Error", "Error", "", "0.00", "0.00", r.Status}
	}
	payment := ""
	if r.PaymentDate != nil {
		payment = FormatDate(*r.PaymentDate)
	}
	return []string{
		r.DeducteeName,
		r.DisplayPAN(),
		r.Category.ShortName(),
		r.Section,
		r.Amount.String(),
		r.RateLabel,
		r.TDSAmount.String(),
		FormatDate(r.DeductionDate),
		FormatDatePtr(r.DueDate),
		payment,
		r.Interest.String(),
		r.TotalPayable.String(),
		r.Status,
	}
}

// CSVFormatter implements the standard results CSV (one row per transaction).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(ResultColumns); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		if err := w.Write(resultRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVDetailedExporter writes every result field under its stable field name.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"row", "section", "description", "deductee_name", "pan", "pan_valid", "category",
		"amount", "rate", "rate_label", "threshold", "threshold_label", "taxable_base", "tds_amount",
		"above_threshold", "status", "deduction_date", "due_date", "due_date_rule", "payment_date",
		"is_late", "months_late", "interest", "total_payable", "fiscal_year"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		rate, threshold := "", ""
		if r.Rate != nil {
			rate = r.Rate.String()
		}
		if r.Threshold != nil {
			threshold = r.Threshold.String()
		}
		row := []string{
			intToString(r.Row),
			r.Section,
			r.Description,
			r.DeducteeName,
			r.PAN,
			boolToString(r.PANValid),
			string(r.Category),
			r.Amount.String(),
			rate,
			r.RateLabel,
			threshold,
			r.ThresholdLabel,
			r.TaxableBase.String(),
			r.TDSAmount.String(),
			boolToString(r.AboveThreshold),
			r.Status,
			isoDate(r.DeductionDate),
			isoDatePtr(r.DueDate),
			r.DueDateRule,
			isoDatePtr(r.PaymentDate),
			boolToString(r.IsLate),
			intToString(r.MonthsLate),
			r.Interest.String(),
			r.TotalPayable.String(),
			r.FiscalYear,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
