package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// Result statuses. Invalid-section and processing-error statuses carry a
// suffix and are built with InvalidSectionStatus and ProcessingErrorStatus.
const (
	StatusTaxable        = "Taxable"
	StatusUnderThreshold = "Under Threshold"
	StatusNotApplicable  = "Not Applicable"

	invalidSectionPrefix  = "Invalid Section Code: "
	processingErrorPrefix = "Processing Error: "
)

// PANNotProvided is shown in place of an empty PAN
const PANNotProvided = "Not Provided"

// InvalidSectionStatus is the status for a row whose section code is unknown
func InvalidSectionStatus(code string) string {
	return invalidSectionPrefix + code
}

// ProcessingErrorStatus is the status for a row that could not be parsed
func ProcessingErrorStatus(err error) string {
	return processingErrorPrefix + err.Error()
}

// Transaction is one payment to assess. PaymentDate is nil when the tax has
// not been deposited yet. Slab, Condition and ThresholdType are optional
// selections for sections that need them.
type Transaction struct {
	Row               int        `json:"row,omitempty"`
	DeducteeName      string     `json:"deductee_name,omitempty"`
	SectionCode       string     `json:"section"`
	Amount            dec.Money  `json:"amount"`
	Category          Category   `json:"category,omitempty"`
	PAN               string     `json:"pan,omitempty"`
	PANAvailable      bool       `json:"pan_available"`
	DeductionDate     time.Time  `json:"deduction_date"`
	PaymentDate       *time.Time `json:"payment_date,omitempty"`
	Slab              string     `json:"slab,omitempty"`
	Condition         string     `json:"condition,omitempty"`
	ThresholdType     string     `json:"threshold_type,omitempty"`
	ThresholdExceeded bool       `json:"threshold_exceeded,omitempty"`
}

// CalculationResult is the outcome of one transaction. Field names are stable;
// report writers bind to them.
type CalculationResult struct {
	Row            int              `json:"row"`
	Section        string           `json:"section"`
	Description    string           `json:"description"`
	DeducteeName   string           `json:"deductee_name"`
	PAN            string           `json:"pan"`
	PANValid       bool             `json:"pan_valid"`
	Category       Category         `json:"category"`
	Amount         dec.Money        `json:"amount"`
	Rate           *decimal.Decimal `json:"rate"`
	RateLabel      string           `json:"rate_label"`
	Threshold      *dec.Money       `json:"threshold"`
	ThresholdLabel string           `json:"threshold_label"`
	TaxableBase    dec.Money        `json:"taxable_base"`
	TDSAmount      dec.Money        `json:"tds_amount"`
	AboveThreshold bool             `json:"above_threshold"`
	Status         string           `json:"status"`
	DeductionDate  time.Time        `json:"deduction_date"`
	DueDate        *time.Time       `json:"due_date"`
	DueDateRule    string           `json:"due_date_rule,omitempty"`
	PaymentDate    *time.Time       `json:"payment_date"`
	IsLate         bool             `json:"is_late"`
	MonthsLate     int              `json:"months_late"`
	Interest       dec.Money        `json:"interest"`
	TotalPayable   dec.Money        `json:"total_payable"`
	FiscalYear     string           `json:"fiscal_year,omitempty"`
}

// IsError reports whether the row failed before a rate could be applied
func (r CalculationResult) IsError() bool {
	return strings.HasPrefix(r.Status, invalidSectionPrefix) || strings.HasPrefix(r.Status, processingErrorPrefix)
}

// IsInvalidSection reports whether the row named an unknown section
func (r CalculationResult) IsInvalidSection() bool {
	return strings.HasPrefix(r.Status, invalidSectionPrefix)
}

// DisplayPAN returns the PAN, or "Not Provided" when empty
func (r CalculationResult) DisplayPAN() string {
	if strings.TrimSpace(r.PAN) == "" {
		return PANNotProvided
	}
	return r.PAN
}

// BatchSummary aggregates a batch of results
type BatchSummary struct {
	Rows           int       `json:"rows"`
	Taxable        int       `json:"taxable"`
	UnderThreshold int       `json:"under_threshold"`
	NotApplicable  int       `json:"not_applicable"`
	Errors         int       `json:"errors"`
	Late           int       `json:"late"`
	TotalAmount    dec.Money `json:"total_amount"`
	TotalTDS       dec.Money `json:"total_tds"`
	TotalInterest  dec.Money `json:"total_interest"`
	TotalPayable   dec.Money `json:"total_payable"`
}

// Summarize counts outcomes and totals the money columns. Error rows count
// towards Rows and Errors only.
func Summarize(results []CalculationResult) BatchSummary {
	s := BatchSummary{
		Rows:          len(results),
		TotalAmount:   dec.Zero(),
		TotalTDS:      dec.Zero(),
		TotalInterest: dec.Zero(),
		TotalPayable:  dec.Zero(),
	}
	for _, r := range results {
		switch {
		case r.IsError():
			s.Errors++
			continue
		case r.Status == StatusTaxable:
			s.Taxable++
		case r.Status == StatusUnderThreshold:
			s.UnderThreshold++
		case r.Status == StatusNotApplicable:
			s.NotApplicable++
		}
		if r.IsLate {
			s.Late++
		}
		s.TotalAmount = s.TotalAmount.Add(r.Amount)
		s.TotalTDS = s.TotalTDS.Add(r.TDSAmount)
		s.TotalInterest = s.TotalInterest.Add(r.Interest)
		s.TotalPayable = s.TotalPayable.Add(r.TotalPayable)
	}
	return s
}

// BatchReport is a processed batch ready for a formatter
type BatchReport struct {
	BatchID         string              `json:"batch_id"`
	Source          string              `json:"source,omitempty"`
	GeneratedAt     time.Time           `json:"generated_at"`
	RegistryVersion string              `json:"registry_version"`
	Convention      string              `json:"interest_convention"`
	Results         []CalculationResult `json:"results"`
	Summary         BatchSummary        `json:"summary"`
}
