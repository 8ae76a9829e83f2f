package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// ErrTooManyRows is returned when a file exceeds the processor's row limit
var ErrTooManyRows = errors.New("too many rows")

// Processor turns bulk records into a batch report
type Processor struct {
	Engine  *calculation.Engine
	MaxRows int
}

// NewProcessor creates a processor. maxRows <= 0 means no limit.
func NewProcessor(engine *calculation.Engine, maxRows int) *Processor {
	return &Processor{Engine: engine, MaxRows: maxRows}
}

// ProcessFile reads and processes an .xlsx or .csv file
func (p *Processor) ProcessFile(ctx context.Context, path string) (*domain.BatchReport, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, records, filepath.Base(path))
}

// ProcessReader reads and processes an upload; name selects the format
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader, name string) (*domain.BatchReport, error) {
	records, err := Read(r, name)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, records, name)
}

// Process calculates every record. Rows that fail to parse become
// Processing Error results in place; the rest go through the engine in
// parallel. Results keep the record order.
func (p *Processor) Process(ctx context.Context, records []Record, source string) (*domain.BatchReport, error) {
	if p.MaxRows > 0 && len(records) > p.MaxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(records), p.MaxRows)
	}

	results := make([]domain.CalculationResult, len(records))
	txs := make([]domain.Transaction, 0, len(records))
	positions := make([]int, 0, len(records))
	for i, rec := range records {
		tx, err := ParseRow(rec)
		if err != nil {
			results[i] = processingError(rec, err)
			p.Engine.Observer.ObserveResult(results[i])
			continue
		}
		txs = append(txs, tx)
		positions = append(positions, i)
	}

	calculated, err := p.Engine.CalculateBatch(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("bulk calculation of %s: %w", source, err)
	}
	for j, pos := range positions {
		results[pos] = calculated[j]
	}

	return &domain.BatchReport{
		BatchID:         uuid.NewString(),
		Source:          source,
		GeneratedAt:     time.Now().UTC(),
		RegistryVersion: p.Engine.Registry.Version,
		Convention:      string(p.Engine.Interest.Convention),
		Results:         results,
		Summary:         domain.Summarize(results),
	}, nil
}

func processingError(rec Record, err error) domain.CalculationResult {
	return domain.CalculationResult{
		Row:            rec.Row,
		Section:        rec.Get(ColSection),
		DeducteeName:   rec.Get(ColDeducteeName),
		PAN:            strings.ToUpper(rec.Get(ColDeducteePAN)),
		RateLabel:      "Error",
		ThresholdLabel: "Error",
		Amount:         dec.Zero(),
		TaxableBase:    dec.Zero(),
		TDSAmount:      dec.Zero(),
		Interest:       dec.Zero(),
		TotalPayable:   dec.Zero(),
		Status:         domain.ProcessingErrorStatus(err),
	}
}
