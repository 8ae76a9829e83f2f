package calculation

import (
	"github.com/shopspring/decimal"

	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// Deduction is the outcome of threshold gating and rate application
type Deduction struct {
	TDS            dec.Money
	TaxableBase    dec.Money
	AboveThreshold bool
}

// ComputeDeduction applies the threshold gate and the rate. The threshold is
// inclusive: an amount equal to it is taxed. With taxOnExcess only the part
// above the threshold is taxed. TDS is rounded to paise, halves away from zero.
func ComputeDeduction(amount dec.Money, rate *decimal.Decimal, threshold *dec.Money, taxOnExcess bool) Deduction {
	none := Deduction{TDS: dec.Zero(), TaxableBase: dec.Zero()}
	if rate == nil {
		return none
	}
	if threshold != nil && amount.LessThan(*threshold) {
		return none
	}

	base := amount
	if taxOnExcess && threshold != nil {
		base = amount.Sub(*threshold)
	}
	return Deduction{
		TDS:            base.Percent(*rate).Round(),
		TaxableBase:    base,
		AboveThreshold: true,
	}
}
