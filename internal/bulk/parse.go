package bulk

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/taxdesk/tds-calculator/internal/domain"
	"github.com/taxdesk/tds-calculator/pkg/dateutil"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// DateLayouts are the accepted textual date formats, tried in order
var DateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// rowFields carries the raw cells that need validating before conversion.
// The col tag names the column in error messages.
type rowFields struct {
	Section           string `col:"TDS Section" validate:"required,max=20"`
	Amount            string `col:"Transaction Amount" validate:"required"`
	ThresholdExceeded string `col:"Threshold Exceeded" validate:"omitempty,oneof=yes no y n true false 1 0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("col")
	})
	return v
}

// ParseRow converts a record to a transaction. A blank deduction date is
// left zero so the engine substitutes today.
func ParseRow(rec Record) (domain.Transaction, error) {
	fields := rowFields{
		Section:           rec.Get(ColSection),
		Amount:            rec.Get(ColAmount),
		ThresholdExceeded: strings.ToLower(rec.Get(ColThresholdExceeded)),
	}
	if err := validate.Struct(fields); err != nil {
		return domain.Transaction{}, describe(err)
	}

	amount, err := dec.NewMoneyFromString(fields.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid %s %q", ColAmount, fields.Amount)
	}
	if amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("%s must not be negative", ColAmount)
	}

	deducted, err := ParseDate(rec.Get(ColDeductionDate))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid %s: %w", ColDeductionDate, err)
	}

	var paid *time.Time
	if raw := rec.Get(ColPaymentDate); raw != "" {
		p, err := ParseDate(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid %s: %w", ColPaymentDate, err)
		}
		paid = &p
	}

	pan := strings.ToUpper(rec.Get(ColDeducteePAN))
	return domain.Transaction{
		Row:               rec.Row,
		DeducteeName:      rec.Get(ColDeducteeName),
		SectionCode:       fields.Section,
		Amount:            amount,
		Category:          domain.ParseCategory(rec.Get(ColCategory)),
		PAN:               pan,
		PANAvailable:      pan != "",
		DeductionDate:     deducted,
		PaymentDate:       paid,
		Slab:              rec.Get(ColSlab),
		Condition:         rec.Get(ColCondition),
		ThresholdType:     rec.Get(ColThresholdType),
		ThresholdExceeded: parseFlag(fields.ThresholdExceeded),
	}, nil
}

// ParseDate accepts the layouts in DateLayouts and Excel date serials.
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateutil.DateOnly(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is not a valid date serial: %w", s, err)
		}
		return dateutil.DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD or DD-MM-YYYY)", s)
}

func parseFlag(s string) bool {
	switch s {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "max":
		return fmt.Errorf("%s is too long", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be yes or no, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
