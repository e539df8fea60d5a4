package usecases_port

import (
	"context"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type GetPredictionUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.PredictionResult, error)
}
