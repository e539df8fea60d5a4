package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
)

type PredictPriceUseCase struct {
	schema *domain.ColumnSchema
	model  port.ScoringModelPort
	bounds domain.Bounds
	format domain.PriceFormat

	// optional
	recorder port.PredictionRecorderPort
	events   port.PredictionEventsPort
}

func NewPredictPriceUseCase(schema *domain.ColumnSchema, model port.ScoringModelPort,
	bounds domain.Bounds, format domain.PriceFormat,
	recorder port.PredictionRecorderPort, events port.PredictionEventsPort) (*PredictPriceUseCase, error) {
	if schema == nil {
		return nil, fmt.Errorf("column schema cannot be nil")
	}
	if model == nil {
		return nil, fmt.Errorf("scoring model cannot be nil")
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &PredictPriceUseCase{
		schema:   schema,
		model:    model,
		bounds:   bounds,
		format:   format,
		recorder: recorder,
		events:   events,
	}, nil
}

// Execute runs query -> vector -> price. Encoding and scoring errors are returned as is;
// audit and event failures are only logged.
func (uc *PredictPriceUseCase) Execute(ctx context.Context, query domain.PropertyQuery) (*domain.PredictionResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "PredictPrice",
		"location": query.Location,
	})
	ucLogger.Info("Use case started", nil)

	vector, err := domain.Encode(uc.schema, query, uc.bounds)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownLocation) || errors.Is(err, domain.ErrOutOfRange) {
			ucLogger.Warn("Query rejected", port.Fields{"reason": err.Error()})
		} else {
			ucLogger.Error("Failed to encode query", err, nil)
		}
		return nil, err
	}
	ucLogger.Debug("Feature vector built", port.Fields{"vector_len": len(vector)})

	price, err := Predict(ctx, uc.model, vector)
	if err != nil {
		ucLogger.Error("Model scoring failed", err, nil)
		return nil, err
	}

	result := domain.NewPredictionResult(query, price, uc.format)
	ucLogger = ucLogger.WithFields(port.Fields{"prediction_id": result.ID.String()})

	if uc.recorder != nil {
		if err := uc.recorder.Save(ctx, result); err != nil {
			ucLogger.Error("Failed to record prediction", err, nil)
		}
	}
	if uc.events != nil {
		if err := uc.events.PublishPredictionCreated(ctx, result); err != nil {
			ucLogger.Error("Failed to publish prediction event", err, nil)
		}
	}

	ucLogger.Info("Use case finished", port.Fields{"price": result.Price})
	return result, nil
}

// Predict scores a single vector as a batch of one and returns the only value.
// Any failure, including a panicking scorer or a NaN or infinite score, wraps domain.ErrScoring.
func Predict(ctx context.Context, model port.ScoringModelPort, vector domain.FeatureVector) (price float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			price, err = 0, fmt.Errorf("%w: scorer panicked: %v", domain.ErrScoring, r)
		}
	}()

	scores, err := model.Score(ctx, [][]float64{vector})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrScoring, err)
	}
	if len(scores) == 0 {
		return 0, fmt.Errorf("%w: model returned no predictions", domain.ErrScoring)
	}
	price = scores[0]
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: model returned non-finite value %v", domain.ErrScoring, price)
	}
	return price, nil
}
