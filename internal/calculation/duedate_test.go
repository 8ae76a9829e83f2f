package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDueDate(t *testing.T) {
	tests := []struct {
		name        string
		deduction   time.Time
		property    bool
		expected    time.Time
		rule        string
		description string
	}{
		{
			name:        "Property month end",
			deduction:   date(2025, time.January, 31),
			property:    true,
			expected:    date(2025, time.March, 2),
			rule:        DueRuleProperty,
			description: "31 Jan + 30 days lands in March",
		},
		{
			name:        "Property mid month",
			deduction:   date(2025, time.June, 5),
			property:    true,
			expected:    date(2025, time.July, 30),
			rule:        DueRuleProperty,
			description: "Counted from the month end, not the deduction date",
		},
		{
			name:        "Property leap February",
			deduction:   date(2024, time.February, 10),
			property:    true,
			expected:    date(2024, time.March, 30),
			rule:        DueRuleProperty,
			description: "29 Feb + 30 days",
		},
		{
			name:        "Property March",
			deduction:   date(2025, time.March, 15),
			property:    true,
			expected:    date(2025, time.April, 30),
			rule:        DueRuleProperty,
			description: "Property rule wins over the March rule",
		},
		{
			name:        "March",
			deduction:   date(2025, time.March, 15),
			expected:    date(2025, time.April, 30),
			rule:        DueRuleMarch,
			description: "Year-end deductions are due 30 April",
		},
		{
			name:        "March first",
			deduction:   date(2026, time.March, 1),
			expected:    date(2026, time.April, 30),
			rule:        DueRuleMarch,
			description: "Any day in March",
		},
		{
			name:        "Standard",
			deduction:   date(2025, time.April, 1),
			expected:    date(2025, time.May, 7),
			rule:        DueRuleStandard,
			description: "7th of the next month",
		},
		{
			name:        "December rolls over",
			deduction:   date(2025, time.December, 31),
			expected:    date(2026, time.January, 7),
			rule:        DueRuleStandard,
			description: "January 7 of the following year",
		},
		{
			name:        "Time of day ignored",
			deduction:   time.Date(2025, time.August, 20, 23, 59, 0, 0, time.UTC),
			expected:    date(2025, time.September, 7),
			rule:        DueRuleStandard,
			description: "Only the calendar date matters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := ComputeDueDateWithRule(tt.deduction, tt.property)
			assert.Equal(t, tt.expected, got, tt.description)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, got, ComputeDueDate(tt.deduction, tt.property), "pure and repeatable")
		})
	}
}

func TestComputeDueDateEveryMonth(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		if m == time.March {
			continue
		}
		due := ComputeDueDate(date(2025, m, 10), false)
		assert.Equal(t, 7, due.Day(), m.String())
		assert.Equal(t, date(2025, m+1, 7), due, m.String())
	}
}
