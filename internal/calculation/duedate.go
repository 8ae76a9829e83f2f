package calculation

import (
	"time"

	"github.com/taxdesk/tds-calculator/pkg/dateutil"
)

// Due-date rules, as shown next to a computed due date
const (
	DueRuleProperty = "30 days from end of month of deduction"
	DueRuleMarch    = "30th April for March deductions"
	DueRuleStandard = "7th of the following month"
)

// propertyGraceDays is the deposit window for property sections, counted from month end
const propertyGraceDays = 30

// ComputeDueDate returns the statutory deposit date for tax deducted on deductionDate
func ComputeDueDate(deductionDate time.Time, propertySection bool) time.Time {
	due, _ := ComputeDueDateWithRule(deductionDate, propertySection)
	return due
}

// ComputeDueDateWithRule returns the deposit date together with the rule that produced it
func ComputeDueDateWithRule(deductionDate time.Time, propertySection bool) (time.Time, string) {
	d := dateutil.DateOnly(deductionDate)

	if propertySection {
		return dateutil.AddDays(dateutil.EndOfMonth(d), propertyGraceDays), DueRuleProperty
	}
	if d.Month() == time.March {
		return time.Date(d.Year(), time.April, 30, 0, 0, 0, 0, time.UTC), DueRuleMarch
	}
	// time.Date normalises month 13 to January of the next year
	return time.Date(d.Year(), d.Month()+1, 7, 0, 0, 0, 0, time.UTC), DueRuleStandard
}
