package usecases_port

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type GetLocationsUseCase interface {
	Execute(ctx context.Context) []domain.LocationItem
}
