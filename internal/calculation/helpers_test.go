package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/tds-calculator/internal/config"
	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func rupees(v int64) dec.Money {
	return dec.NewMoneyFromInt(v)
}

func rupeesPtr(v int64) *dec.Money {
	m := rupees(v)
	return &m
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func defaultRegistry(t *testing.T) *domain.Registry {
	t.Helper()
	reg, err := config.LoadRegistry("")
	require.NoError(t, err)
	return reg
}

func lookup(t *testing.T, reg *domain.Registry, code string) *domain.Section {
	t.Helper()
	s, err := reg.Lookup(code)
	require.NoError(t, err)
	return s
}
