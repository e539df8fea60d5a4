package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

// PredictionRecorderPort keeps an audit trail of served predictions.
type PredictionRecorderPort interface {
	Save(ctx context.Context, result *domain.PredictionResult) error
	// FindByID returns (nil, nil) when no prediction has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PredictionResult, error)
}
