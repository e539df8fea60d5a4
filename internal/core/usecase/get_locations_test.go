package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocations(t *testing.T) {
	s, err := domain.NewColumnSchema(domain.ColumnsFromNames(
		[]string{"wakad", "total_sqft", "baner road", "bath", "Kothrud", "bhk", "balcony"}))
	require.NoError(t, err)

	items := NewGetLocationsUseCase(s).Execute(context.Background())

	assert.Equal(t, []domain.LocationItem{
		{SystemName: "baner road", DisplayName: "Baner Road"},
		{SystemName: "kothrud", DisplayName: "Kothrud"},
		{SystemName: "wakad", DisplayName: "Wakad"},
	}, items)
}

func TestGetFormOptions(t *testing.T) {
	locations := NewGetLocationsUseCase(testSchema(t))
	opts := NewGetFormOptionsUseCase(locations, domain.DefaultBounds(), domain.DefaultPriceFormat()).Execute(context.Background())

	assert.Len(t, opts.Locations, 2)
	assert.Equal(t, domain.DefaultBounds(), opts.Bounds)
	assert.Equal(t, "Lakhs", opts.Format.Unit)
}

func TestGetPrediction(t *testing.T) {
	rec := &memRecorder{}
	stored := domain.NewPredictionResult(wakadQuery(), 1206, domain.DefaultPriceFormat())
	require.NoError(t, rec.Save(context.Background(), stored))

	uc := NewGetPredictionUseCase(rec)

	got, err := uc.Execute(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPredictionNotFound)
}
