package output

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxdesk/tds-calculator/pkg/dateutil"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// FormatCurrency formats an amount in rupees with Indian digit grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount dec.Money) string { return amount.Format() }

// FormatCurrencyPtr formats an optional amount; nil renders as "-".
func FormatCurrencyPtr(amount *dec.Money) string {
	if amount == nil {
		return "-"
	}
	return amount.Format()
}

// FormatPercentage formats a rate already in percent units; nil renders as "-".
func FormatPercentage(rate *decimal.Decimal) string {
	if rate == nil {
		return "-"
	}
	return rate.String() + "%"
}

// FormatDate renders a date as 15-Jan-2026
func FormatDate(t time.Time) string { return dateutil.FormatDisplay(t) }

// FormatDatePtr renders an optional date; nil renders as "-".
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return dateutil.FormatDisplay(*t)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func isoDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return isoDate(*t)
}

func parseMoneyCell(s string) (float64, error) {
	m, err := dec.NewMoneyFromString(s)
	if err != nil {
		return 0, err
	}
	return m.InexactFloat64(), nil
}
