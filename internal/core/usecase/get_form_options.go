package usecase

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port/usecases_port"
)

type GetFormOptionsUseCase struct {
	locations usecases_port.GetLocationsUseCase
	bounds    domain.Bounds
	format    domain.PriceFormat
}

func NewGetFormOptionsUseCase(locations usecases_port.GetLocationsUseCase, bounds domain.Bounds, format domain.PriceFormat) *GetFormOptionsUseCase {
	return &GetFormOptionsUseCase{locations: locations, bounds: bounds, format: format}
}

// Execute returns the selectable locations together with the bounds the encoder enforces,
// so a form can render the same limits.
func (uc *GetFormOptionsUseCase) Execute(ctx context.Context) *domain.FormOptions {
	return &domain.FormOptions{
		Locations: uc.locations.Execute(ctx),
		Bounds:    uc.bounds,
		Format:    uc.format,
	}
}
