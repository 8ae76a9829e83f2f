package dateutil

import (
	"fmt"
	"time"
)

// DateOnly truncates a time to midnight UTC of the same calendar day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last calendar day of the month containing date
func EndOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), DaysInMonth(date.Year(), date.Month()), 0, 0, 0, 0, time.UTC)
}

// MonthIndex maps a date onto a linear month count (year*12 + month)
func MonthIndex(date time.Time) int {
	return date.Year()*12 + int(date.Month())
}

// MonthsBetween returns the number of calendar-month boundaries crossed from
// one date to another. Days within the month are ignored.
func MonthsBetween(from, to time.Time) int {
	return MonthIndex(to) - MonthIndex(from)
}

// AddDays adds a number of days to a date
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// FiscalYearStart returns April 1 of the Indian financial year containing date
func FiscalYearStart(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// FiscalYear returns the financial year label, e.g. "2025-26"
func FiscalYear(date time.Time) string {
	start := FiscalYearStart(date).Year()
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// InRange reports whether date falls within [from, to] at day granularity
func InRange(date, from, to time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(from)) && !d.After(DateOnly(to))
}

// FormatDisplay formats a date the way deposit schedules print it: 07-Jun-2025
func FormatDisplay(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format("02-Jan-2006")
}
