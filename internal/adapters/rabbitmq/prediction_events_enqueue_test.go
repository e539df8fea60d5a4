package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.routingKey = routingKey
	p.msg = msg
	return p.err
}

func sampleResult() *domain.PredictionResult {
	q := domain.PropertyQuery{Location: "Wakad", TotalSqft: 1200, Bedrooms: 2, Bathrooms: 2, Balconies: 1}
	return domain.NewPredictionResult(q, 1206, domain.DefaultPriceFormat())
}

func TestPredictionEventsAdapter_Publish(t *testing.T) {
	pub := &fakePublisher{}
	adapter, err := NewPredictionEventsAdapter(pub, constants.RoutingKeyPredictionCreated)
	require.NoError(t, err)

	result := sampleResult()
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-42")
	require.NoError(t, adapter.PublishPredictionCreated(ctx, result))

	assert.Equal(t, constants.RoutingKeyPredictionCreated, pub.routingKey)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "trace-42", pub.msg.Headers["x-trace-id"])
	assert.Equal(t, result.ID.String(), pub.msg.MessageId)

	var dto PredictionCreatedDTO
	require.NoError(t, json.Unmarshal(pub.msg.Body, &dto))
	assert.Equal(t, "wakad", dto.Location)
	assert.Equal(t, 1206.0, dto.Price)
	assert.Equal(t, "trace-42", dto.TraceID)
}

func TestPredictionEventsAdapter_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	adapter, err := NewPredictionEventsAdapter(pub, constants.RoutingKeyPredictionCreated)
	require.NoError(t, err)

	assert.Error(t, adapter.PublishPredictionCreated(context.Background(), sampleResult()))
}

func TestNewPredictionEventsAdapter_Validation(t *testing.T) {
	_, err := NewPredictionEventsAdapter(nil, "x")
	assert.Error(t, err)
	_, err = NewPredictionEventsAdapter(&fakePublisher{}, "")
	assert.Error(t, err)
}

func TestPkgLoggerBridge_ToFields(t *testing.T) {
	b := &PkgLoggerBridge{}
	fields := b.toFields("name", "ex", 42, "skipped", "dangling")
	assert.Equal(t, "ex", fields["name"])
	assert.Len(t, fields, 1)
}
