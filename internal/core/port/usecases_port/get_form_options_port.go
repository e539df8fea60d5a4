package usecases_port

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type GetFormOptionsUseCase interface {
	Execute(ctx context.Context) *domain.FormOptions
}
