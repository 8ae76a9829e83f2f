package calculation

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/taxdesk/tds-calculator/internal/domain"
	"github.com/taxdesk/tds-calculator/pkg/dateutil"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// LabelThresholdExceeded replaces the threshold label when a cumulative
// threshold was already crossed by earlier payments
const LabelThresholdExceeded = "Full Amount (Threshold Exceeded)"

// EngineConfig tunes an Engine
type EngineConfig struct {
	Convention MonthConvention
	Workers    int
}

// Engine runs transactions through category, rate, deduction, due-date and
// interest resolution. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	Registry *domain.Registry
	Interest *InterestCalculator
	Workers  int
	Logger   Logger
	Observer Observer
}

// NewEngine creates an engine over reg using the elapsed month convention
func NewEngine(reg *domain.Registry) *Engine {
	e, _ := NewEngineWithConfig(reg, EngineConfig{Convention: ConventionElapsed})
	return e
}

// NewEngineWithConfig creates an engine with an explicit convention and worker count
func NewEngineWithConfig(reg *domain.Registry, cfg EngineConfig) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("engine requires a section registry")
	}
	convention, err := ParseMonthConvention(string(cfg.Convention))
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rate := reg.InterestRatePerMonth
	if rate.IsZero() {
		rate = DefaultInterestRate
	}

	return &Engine{
		Registry: reg,
		Interest: NewInterestCalculatorWithConfig(rate, convention),
		Workers:  workers,
		Logger:   NopLogger{},
		Observer: NopObserver{},
	}, nil
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetObserver sets the result observer. If nil is provided, results are not observed.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		e.Observer = NopObserver{}
		return
	}
	e.Observer = o
}

// Calculate assesses one transaction. Business outcomes such as an unknown
// section or an inapplicable rate are reported in the result status, never as errors.
func (e *Engine) Calculate(tx domain.Transaction) domain.CalculationResult {
	result := e.calculate(tx)
	e.Observer.ObserveResult(result)
	return result
}

func (e *Engine) calculate(tx domain.Transaction) domain.CalculationResult {
	pan := NormalizePAN(tx.PAN)
	panValid := ValidatePAN(pan)
	panAvailable := EffectivePANAvailable(pan, tx.PANAvailable)
	category := ResolveCategory(pan, panAvailable, tx.Category.OrDefault())

	deductionDate := dateutil.DateOnly(tx.DeductionDate)
	if tx.DeductionDate.IsZero() {
		deductionDate = Today()
	}

	result := domain.CalculationResult{
		Row:           tx.Row,
		Section:       strings.TrimSpace(tx.SectionCode),
		DeducteeName:  strings.TrimSpace(tx.DeducteeName),
		PAN:           pan,
		PANValid:      panValid,
		Category:      category,
		Amount:        tx.Amount,
		TaxableBase:   dec.Zero(),
		TDSAmount:     dec.Zero(),
		Interest:      dec.Zero(),
		TotalPayable:  dec.Zero(),
		DeductionDate: deductionDate,
		FiscalYear:    dateutil.FiscalYear(deductionDate),
	}
	if tx.PaymentDate != nil {
		paid := dateutil.DateOnly(*tx.PaymentDate)
		result.PaymentDate = &paid
	}

	section, err := e.Registry.Lookup(tx.SectionCode)
	if err != nil {
		e.Logger.Warnf("row %d: %v", tx.Row, err)
		result.RateLabel = "N/A"
		result.ThresholdLabel = "N/A"
		result.Status = domain.InvalidSectionStatus(result.Section)
		return result
	}
	result.Section = section.Code
	result.Description = section.Description

	if tx.PANAvailable && !panValid {
		e.Logger.Debugf("row %d: malformed PAN %q, applying no-PAN rate", tx.Row, pan)
	}
	if !e.Registry.Covers(deductionDate) {
		e.Logger.Warnf("row %d: deduction date %s is outside rule table %s (FY %s)",
			tx.Row, deductionDate.Format("2006-01-02"), e.Registry.Version, e.Registry.FiscalYear)
	}

	threshold, thresholdLabel := section.ResolveThreshold(tx.ThresholdType)
	if section.Cumulative && tx.ThresholdExceeded {
		threshold, thresholdLabel = nil, LabelThresholdExceeded
	}
	result.Threshold = threshold
	result.ThresholdLabel = thresholdLabel

	slab := strings.TrimSpace(tx.Slab)
	if rule, ok := section.Rate.(domain.SlabRate); ok && slab == "" {
		if s, found := rule.ForAmount(tx.Amount); found {
			slab = s.Description
		}
	}

	rate, rateLabel := ResolveRate(section, category, panAvailable, slab, tx.Condition)
	result.Rate = rate
	result.RateLabel = rateLabel

	ded := ComputeDeduction(tx.Amount, rate, threshold, section.TaxOnExcess)
	result.TDSAmount = ded.TDS
	result.TaxableBase = ded.TaxableBase
	result.AboveThreshold = ded.AboveThreshold
	switch {
	case rate == nil:
		result.Status = domain.StatusNotApplicable
	case !ded.AboveThreshold:
		result.Status = domain.StatusUnderThreshold
	default:
		result.Status = domain.StatusTaxable
	}

	due, rule := ComputeDueDateWithRule(deductionDate, section.PropertySection)
	result.DueDate = &due
	result.DueDateRule = rule

	if result.PaymentDate != nil {
		interest := e.Interest.Compute(ded.TDS, deductionDate, *result.PaymentDate, due)
		result.IsLate = interest.IsLate
		result.MonthsLate = interest.Months
		result.Interest = interest.Amount
	}
	result.TotalPayable = result.TDSAmount.Add(result.Interest)

	e.Logger.Debugf("row %d: %s %s amount=%s rate=%s tds=%s status=%s",
		tx.Row, section.Code, category.ShortName(), tx.Amount, rateLabel, ded.TDS, result.Status)
	return result
}
