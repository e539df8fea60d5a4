package port

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type PredictionEventsPort interface {
	PublishPredictionCreated(ctx context.Context, result *domain.PredictionResult) error
}
