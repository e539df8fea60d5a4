package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contracts"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PredictionCreatedDTO is the body of a prediction.created message.
type PredictionCreatedDTO struct {
	PredictionID string    `json:"prediction_id"`
	TraceID      string    `json:"trace_id,omitempty"`
	Location     string    `json:"location"`
	TotalSqft    float64   `json:"total_sqft"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Balconies    int       `json:"balconies"`
	Price        float64   `json:"price"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
}

// Publisher is the part of rabbitmq_producer.Publisher this adapter needs.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type PredictionEventsAdapter struct {
	producer       Publisher
	routingKey     string
	publishTimeout time.Duration
}

func NewPredictionEventsAdapter(producer Publisher, routingKey string) (*PredictionEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &PredictionEventsAdapter{
		producer:       producer,
		routingKey:     routingKey,
		publishTimeout: 5 * time.Second,
	}, nil
}

func toPredictionCreatedDTO(ctx context.Context, result *domain.PredictionResult) PredictionCreatedDTO {
	return PredictionCreatedDTO{
		PredictionID: result.ID.String(),
		TraceID:      contextkeys.TraceIDFromContext(ctx),
		Location:     domain.NormalizeLocation(result.Query.Location),
		TotalSqft:    result.Query.TotalSqft,
		Bedrooms:     result.Query.Bedrooms,
		Bathrooms:    result.Query.Bathrooms,
		Balconies:    result.Query.Balconies,
		Price:        result.Price,
		Unit:         result.Unit,
		CreatedAt:    result.CreatedAt,
	}
}

func (a *PredictionEventsAdapter) PublishPredictionCreated(ctx context.Context, result *domain.PredictionResult) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":     "PredictionEventsAdapter",
		"routing_key":   a.routingKey,
		"prediction_id": result.ID.String(),
	})

	body, err := json.Marshal(toPredictionCreatedDTO(ctx, result))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal prediction event: %w", err)
	}
	if err := contracts.Validate(contracts.PredictionCreatedV1, body); err != nil {
		return fmt.Errorf("rabbitmq adapter: prediction event breaks its contract: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         constants.EventTypePredictionCreated,
		MessageId:    result.ID.String(),
		Headers: amqp.Table{
			"x-event-type":    constants.EventTypePredictionCreated,
			"x-event-version": constants.EventVersionPredictionCreated,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing prediction event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to publish prediction %s: %w", result.ID, err)
	}
	adapterLogger.Debug("Prediction event published", nil)
	return nil
}
