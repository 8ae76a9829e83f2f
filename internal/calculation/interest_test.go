package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthConvention(t *testing.T) {
	c, err := ParseMonthConvention("")
	require.NoError(t, err)
	assert.Equal(t, ConventionElapsed, c)

	c, err = ParseMonthConvention(" Inclusive ")
	require.NoError(t, err)
	assert.Equal(t, ConventionInclusive, c)

	_, err = ParseMonthConvention("daily")
	assert.Error(t, err)
}

func TestInterestCompute(t *testing.T) {
	tests := []struct {
		name        string
		convention  MonthConvention
		tds         int64
		deduction   time.Time
		payment     time.Time
		due         time.Time
		wantLate    bool
		wantMonths  int
		wantAmount  string
		description string
	}{
		{
			name:        "Late elapsed",
			convention:  ConventionElapsed,
			tds:         10000,
			deduction:   date(2025, time.April, 1),
			payment:     date(2025, time.June, 10),
			due:         date(2025, time.May, 7),
			wantLate:    true,
			wantMonths:  2,
			wantAmount:  "300.00",
			description: "April to June is two elapsed months",
		},
		{
			name:        "Late inclusive",
			convention:  ConventionInclusive,
			tds:         10000,
			deduction:   date(2025, time.April, 1),
			payment:     date(2025, time.June, 10),
			due:         date(2025, time.May, 7),
			wantLate:    true,
			wantMonths:  3,
			wantAmount:  "450.00",
			description: "The deduction month counts too",
		},
		{
			name:        "Paid on due date",
			convention:  ConventionElapsed,
			tds:         10000,
			deduction:   date(2025, time.April, 1),
			payment:     date(2025, time.May, 7),
			due:         date(2025, time.May, 7),
			wantAmount:  "0.00",
			description: "On-time includes the due date itself",
		},
		{
			name:        "Paid early",
			convention:  ConventionInclusive,
			tds:         10000,
			deduction:   date(2025, time.April, 1),
			payment:     date(2025, time.April, 20),
			due:         date(2025, time.May, 7),
			wantAmount:  "0.00",
			description: "Not late under any convention",
		},
		{
			name:        "One day late",
			convention:  ConventionElapsed,
			tds:         1500,
			deduction:   date(2025, time.April, 30),
			payment:     date(2025, time.May, 8),
			due:         date(2025, time.May, 7),
			wantLate:    true,
			wantMonths:  1,
			wantAmount:  "22.50",
			description: "A part month counts as a month",
		},
		{
			name:        "Across fiscal year",
			convention:  ConventionElapsed,
			tds:         3333,
			deduction:   date(2025, time.December, 15),
			payment:     date(2026, time.April, 2),
			due:         date(2026, time.January, 7),
			wantLate:    true,
			wantMonths:  4,
			wantAmount:  "199.98",
			description: "3333 x 1.5% x 4 = 199.98",
		},
		{
			name:        "Rounding half up",
			convention:  ConventionElapsed,
			tds:         1,
			deduction:   date(2025, time.May, 1),
			payment:     date(2025, time.June, 8),
			due:         date(2025, time.June, 7),
			wantLate:    true,
			wantMonths:  1,
			wantAmount:  "0.02",
			description: "0.015 rounds up to 0.02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := NewInterestCalculatorWithConfig(DefaultInterestRate, tt.convention)
			got := ic.Compute(rupees(tt.tds), tt.deduction, tt.payment, tt.due)
			assert.Equal(t, tt.wantLate, got.IsLate, tt.description)
			assert.Equal(t, tt.wantMonths, got.Months, tt.description)
			assert.Equal(t, tt.wantAmount, got.Amount.String(), tt.description)
		})
	}
}

func TestComputeInterestDefaults(t *testing.T) {
	months, interest, late := ComputeInterest(rupees(10000), date(2025, time.April, 1), date(2025, time.June, 10), date(2025, time.May, 7))
	assert.True(t, late)
	assert.Equal(t, 2, months)
	assert.Equal(t, "300.00", interest.String())
}

func TestInterestCustomRate(t *testing.T) {
	ic := NewInterestCalculatorWithConfig(decimal.NewFromInt(1), "")
	assert.Equal(t, ConventionElapsed, ic.Convention)
	got := ic.Compute(rupees(10000), date(2025, time.April, 1), date(2025, time.June, 10), date(2025, time.May, 7))
	assert.Equal(t, "200.00", got.Amount.String())
}
