package port

import "context"

// ScoringModelPort is the trained model seen as a black box:
// one prediction per row of the batch, in order.
type ScoringModelPort interface {
	Score(ctx context.Context, batch [][]float64) ([]float64, error)
}

// ScoringModelFunc adapts a plain function to ScoringModelPort.
type ScoringModelFunc func(ctx context.Context, batch [][]float64) ([]float64, error)

func (f ScoringModelFunc) Score(ctx context.Context, batch [][]float64) ([]float64, error) {
	return f(ctx, batch)
}
