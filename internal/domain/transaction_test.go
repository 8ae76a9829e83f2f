package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

func TestStatusHelpers(t *testing.T) {
	assert.Equal(t, "Invalid Section Code: 999Z", InvalidSectionStatus("999Z"))
	assert.Equal(t, "Processing Error: bad date", ProcessingErrorStatus(errors.New("bad date")))

	assert.True(t, CalculationResult{Status: InvalidSectionStatus("X")}.IsError())
	assert.True(t, CalculationResult{Status: ProcessingErrorStatus(errors.New("x"))}.IsError())
	assert.False(t, CalculationResult{Status: StatusNotApplicable}.IsError())
	assert.True(t, CalculationResult{Status: InvalidSectionStatus("X")}.IsInvalidSection())
	assert.False(t, CalculationResult{Status: ProcessingErrorStatus(errors.New("x"))}.IsInvalidSection())

	assert.Equal(t, "Not Provided", CalculationResult{}.DisplayPAN())
	assert.Equal(t, "ABCPD1234E", CalculationResult{PAN: "ABCPD1234E"}.DisplayPAN())
}

func TestSummarize(t *testing.T) {
	results := []CalculationResult{
		{
			Status: StatusTaxable, Amount: dec.NewMoneyFromInt(150000), TDSAmount: dec.NewMoneyFromInt(1500),
			Interest: dec.NewMoneyFromInt(45), TotalPayable: dec.NewMoneyFromInt(1545), IsLate: true,
		},
		{
			Status: StatusTaxable, Amount: dec.NewMoneyFromInt(75000), TDSAmount: dec.NewMoneyFromInt(7500),
			TotalPayable: dec.NewMoneyFromInt(7500),
		},
		{Status: StatusUnderThreshold, Amount: dec.NewMoneyFromInt(5000)},
		{Status: StatusNotApplicable, Amount: dec.NewMoneyFromInt(1000)},
		{Status: InvalidSectionStatus("999Z"), Amount: dec.NewMoneyFromInt(99999)},
	}

	s := Summarize(results)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 2, s.Taxable)
	assert.Equal(t, 1, s.UnderThreshold)
	assert.Equal(t, 1, s.NotApplicable)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, "231000.00", s.TotalAmount.String(), "error rows are not totalled")
	assert.Equal(t, "9000.00", s.TotalTDS.String())
	assert.Equal(t, "45.00", s.TotalInterest.String())
	assert.Equal(t, "9045.00", s.TotalPayable.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Rows)
	assert.Equal(t, "0.00", s.TotalTDS.String())
}
