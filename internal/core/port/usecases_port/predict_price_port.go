package usecases_port

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type PredictPriceUseCase interface {
	Execute(ctx context.Context, query domain.PropertyQuery) (*domain.PredictionResult, error)
}
