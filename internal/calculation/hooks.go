package calculation

import (
	"time"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// Logger receives the engine's diagnostics: unknown sections, malformed PANs,
// dates outside the rule table and per-row traces at debug level.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Observer receives every result the engine produces. Implementations must
// be safe for concurrent use; batch rows are calculated in parallel.
type Observer interface {
	ObserveResult(result domain.CalculationResult)
	ObserveBatch(rows int, elapsed time.Duration)
}

// NopLogger discards all diagnostics. It is the engine default.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// NopObserver implements Observer and discards everything.
type NopObserver struct{}

func (NopObserver) ObserveResult(domain.CalculationResult) {}
func (NopObserver) ObserveBatch(int, time.Duration)        {}
