package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *domain.ColumnSchema {
	t.Helper()
	s, err := domain.NewColumnSchema(domain.ColumnsFromNames(
		[]string{"kothrud", "wakad", "total_sqft", "bath", "bhk", "balcony"}))
	require.NoError(t, err)
	return s
}

// sumModel scores a row as the sum of its values and remembers what it was given.
type sumModel struct {
	mu      sync.Mutex
	calls   int
	batches [][][]float64
}

func (m *sumModel) Score(ctx context.Context, batch [][]float64) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.batches = append(m.batches, batch)

	out := make([]float64, len(batch))
	for i, row := range batch {
		for _, v := range row {
			out[i] += v
		}
	}
	return out, nil
}

type memRecorder struct {
	saved []*domain.PredictionResult
	err   error
}

func (r *memRecorder) Save(ctx context.Context, result *domain.PredictionResult) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, result)
	return nil
}

func (r *memRecorder) FindByID(ctx context.Context, id uuid.UUID) (*domain.PredictionResult, error) {
	for _, p := range r.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, r.err
}

type memEvents struct {
	published []*domain.PredictionResult
	err       error
}

func (e *memEvents) PublishPredictionCreated(ctx context.Context, result *domain.PredictionResult) error {
	if e.err != nil {
		return e.err
	}
	e.published = append(e.published, result)
	return nil
}

func wakadQuery() domain.PropertyQuery {
	return domain.PropertyQuery{Location: "Wakad", TotalSqft: 1200, Bedrooms: 2, Bathrooms: 2, Balconies: 1}
}

func TestPredictPrice_EndToEnd(t *testing.T) {
	model := &sumModel{}
	rec := &memRecorder{}
	events := &memEvents{}
	uc, err := NewPredictPriceUseCase(testSchema(t), model, domain.DefaultBounds(), domain.DefaultPriceFormat(), rec, events)
	require.NoError(t, err)

	result, err := uc.Execute(context.Background(), wakadQuery())
	require.NoError(t, err)

	assert.Equal(t, 1206.0, result.Price)
	assert.Equal(t, "₹ 1,206.00 Lakhs", result.Formatted)
	assert.Equal(t, wakadQuery(), result.Query)

	require.Equal(t, 1, model.calls)
	require.Len(t, model.batches[0], 1, "vector must be scored as a batch of one")
	assert.Equal(t, []float64{0, 1, 1200, 2, 2, 1}, model.batches[0][0])

	require.Len(t, rec.saved, 1)
	assert.Equal(t, result.ID, rec.saved[0].ID)
	require.Len(t, events.published, 1)
}

func TestPredictPrice_UnknownLocationNeverScores(t *testing.T) {
	model := &sumModel{}
	rec := &memRecorder{}
	uc, err := NewPredictPriceUseCase(testSchema(t), model, domain.DefaultBounds(), domain.DefaultPriceFormat(), rec, nil)
	require.NoError(t, err)

	q := wakadQuery()
	q.Location = "Baner"
	result, err := uc.Execute(context.Background(), q)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
	assert.Zero(t, model.calls)
	assert.Empty(t, rec.saved)
}

func TestPredictPrice_OutOfRange(t *testing.T) {
	model := &sumModel{}
	uc, err := NewPredictPriceUseCase(testSchema(t), model, domain.DefaultBounds(), domain.DefaultPriceFormat(), nil, nil)
	require.NoError(t, err)

	q := wakadQuery()
	q.Bedrooms = 11
	_, err = uc.Execute(context.Background(), q)

	var rangeErr *domain.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, domain.FieldBedrooms, rangeErr.Field)
	assert.Zero(t, model.calls)
}

func TestPredictPrice_SideEffectFailuresDoNotFailPrediction(t *testing.T) {
	rec := &memRecorder{err: errors.New("db down")}
	events := &memEvents{err: errors.New("broker down")}
	uc, err := NewPredictPriceUseCase(testSchema(t), &sumModel{}, domain.DefaultBounds(), domain.DefaultPriceFormat(), rec, events)
	require.NoError(t, err)

	result, err := uc.Execute(context.Background(), wakadQuery())
	require.NoError(t, err)
	assert.Equal(t, 1206.0, result.Price)
}

func TestPredictPrice_ConcurrentRequests(t *testing.T) {
	uc, err := NewPredictPriceUseCase(testSchema(t), &sumModel{}, domain.DefaultBounds(), domain.DefaultPriceFormat(), nil, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := wakadQuery()
			q.Balconies = i % 5
			result, err := uc.Execute(context.Background(), q)
			if err != nil {
				errs <- err
				return
			}
			if want := 1205.0 + float64(i%5); result.Price != want {
				errs <- errors.New("unexpected price")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewPredictPriceUseCase_Validation(t *testing.T) {
	_, err := NewPredictPriceUseCase(nil, &sumModel{}, domain.DefaultBounds(), domain.DefaultPriceFormat(), nil, nil)
	assert.Error(t, err)

	_, err = NewPredictPriceUseCase(testSchema(t), nil, domain.DefaultBounds(), domain.DefaultPriceFormat(), nil, nil)
	assert.Error(t, err)

	bad := domain.DefaultBounds()
	bad.TotalSqft = domain.Range{Min: 10, Max: 1}
	_, err = NewPredictPriceUseCase(testSchema(t), &sumModel{}, bad, domain.DefaultPriceFormat(), nil, nil)
	assert.Error(t, err)
}

func TestPredict_ScoringFailures(t *testing.T) {
	vector := domain.FeatureVector{0, 1, 1200, 2, 2, 1}
	boom := errors.New("boom")

	tests := []struct {
		name  string
		model port.ScoringModelFunc
	}{
		{"scorer error", func(ctx context.Context, b [][]float64) ([]float64, error) { return nil, boom }},
		{"empty result", func(ctx context.Context, b [][]float64) ([]float64, error) { return []float64{}, nil }},
		{"NaN", func(ctx context.Context, b [][]float64) ([]float64, error) { return []float64{math.NaN()}, nil }},
		{"Inf", func(ctx context.Context, b [][]float64) ([]float64, error) { return []float64{math.Inf(-1)}, nil }},
		{"panic", func(ctx context.Context, b [][]float64) ([]float64, error) { panic("index out of range") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Predict(context.Background(), tt.model, vector)
			assert.ErrorIs(t, err, domain.ErrScoring)
		})
	}

	_, err := Predict(context.Background(), tests[0].model, vector)
	assert.ErrorIs(t, err, boom, "the scorer's own error stays in the chain")
}
