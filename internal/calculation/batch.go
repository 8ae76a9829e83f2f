package calculation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// CalculateBatch assesses transactions in parallel on at most Workers
// goroutines. Results are returned in input order. The only error is the
// context's, when it is cancelled before every row is done.
func (e *Engine) CalculateBatch(ctx context.Context, txs []domain.Transaction) ([]domain.CalculationResult, error) {
	start := time.Now()
	results := make([]domain.CalculationResult, len(txs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)
	for i := range txs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Calculate(txs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	e.Observer.ObserveBatch(len(txs), elapsed)
	e.Logger.Infof("batch of %d rows calculated in %s", len(txs), elapsed)
	return results, nil
}
