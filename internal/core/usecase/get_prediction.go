package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
)

type GetPredictionUseCase struct {
	recorder port.PredictionRecorderPort
}

func NewGetPredictionUseCase(recorder port.PredictionRecorderPort) *GetPredictionUseCase {
	return &GetPredictionUseCase{recorder: recorder}
}

func (uc *GetPredictionUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.PredictionResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "GetPrediction",
		"prediction_id": id.String(),
	})

	result, err := uc.recorder.FindByID(ctx, id)
	if err != nil {
		logger.Error("Repository failed to find prediction", err, nil)
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	if result == nil {
		logger.Warn("Prediction not found", nil)
		return nil, domain.ErrPredictionNotFound
	}
	return result, nil
}
