package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxdesk/tds-calculator/pkg/dateutil"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// MonthConvention decides how late-deposit months are counted
type MonthConvention string

const (
	// ConventionElapsed counts calendar-month boundaries between deduction and payment
	ConventionElapsed MonthConvention = "elapsed"
	// ConventionInclusive also counts the month of deduction itself
	ConventionInclusive MonthConvention = "inclusive"
)

// DefaultInterestRate is the Section 201(1A) rate, percent per month
var DefaultInterestRate = decimal.RequireFromString("1.5")

// ParseMonthConvention parses a convention name; empty means elapsed
func ParseMonthConvention(s string) (MonthConvention, error) {
	switch MonthConvention(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConventionElapsed:
		return ConventionElapsed, nil
	case ConventionInclusive:
		return ConventionInclusive, nil
	default:
		return "", fmt.Errorf("unknown interest month convention %q (want elapsed or inclusive)", s)
	}
}

// Interest is the late-deposit assessment for one deduction
type Interest struct {
	IsLate bool
	Months int
	Amount dec.Money
}

// InterestCalculator computes simple interest on late deposits
type InterestCalculator struct {
	RatePerMonth decimal.Decimal
	Convention   MonthConvention
}

// NewInterestCalculator creates a calculator with the statutory rate and the elapsed convention
func NewInterestCalculator() *InterestCalculator {
	return &InterestCalculator{
		RatePerMonth: DefaultInterestRate,
		Convention:   ConventionElapsed,
	}
}

// NewInterestCalculatorWithConfig creates a calculator with an explicit rate and convention
func NewInterestCalculatorWithConfig(ratePerMonth decimal.Decimal, convention MonthConvention) *InterestCalculator {
	if convention == "" {
		convention = ConventionElapsed
	}
	return &InterestCalculator{
		RatePerMonth: ratePerMonth,
		Convention:   convention,
	}
}

// Months returns the number of months interest is charged for
func (ic *InterestCalculator) Months(deductionDate, paymentDate time.Time) int {
	months := dateutil.MonthsBetween(deductionDate, paymentDate)
	if ic.Convention == ConventionInclusive {
		months++
	}
	// a part month counts as a full month
	if months < 1 {
		months = 1
	}
	return months
}

// Compute assesses interest on tds. Payment on the due date is on time.
func (ic *InterestCalculator) Compute(tds dec.Money, deductionDate, paymentDate, dueDate time.Time) Interest {
	if !dateutil.DateOnly(paymentDate).After(dateutil.DateOnly(dueDate)) {
		return Interest{Amount: dec.Zero()}
	}

	months := ic.Months(deductionDate, paymentDate)
	amount := tds.Percent(ic.RatePerMonth).Mul(decimal.NewFromInt(int64(months))).Round()
	return Interest{IsLate: true, Months: months, Amount: amount}
}

// ComputeInterest assesses interest at 1.5% per month, counting elapsed months
func ComputeInterest(tds dec.Money, deductionDate, paymentDate, dueDate time.Time) (int, dec.Money, bool) {
	i := NewInterestCalculator().Compute(tds, deductionDate, paymentDate, dueDate)
	return i.Months, i.Amount, i.IsLate
}
