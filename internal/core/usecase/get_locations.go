package usecase

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type GetLocationsUseCase struct {
	items []domain.LocationItem
}

// NewGetLocationsUseCase builds the location dictionary once; the schema never changes after load.
func NewGetLocationsUseCase(schema *domain.ColumnSchema) *GetLocationsUseCase {
	locations := schema.Locations()
	items := make([]domain.LocationItem, 0, len(locations))
	for _, loc := range locations {
		items = append(items, domain.LocationItem{SystemName: loc, DisplayName: domain.DisplayName(loc)})
	}
	return &GetLocationsUseCase{items: items}
}

func (uc *GetLocationsUseCase) Execute(ctx context.Context) []domain.LocationItem {
	out := make([]domain.LocationItem, len(uc.items))
	copy(out, uc.items)
	return out
}
