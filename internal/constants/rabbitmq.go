package constants

const (
	PredictionsExchange     = "predictions_exchange"
	PredictionsExchangeType = "topic"
)

// Routing keys
const (
	RoutingKeyPredictionCreated = "prediction.created"
)

// Message types carried in the AMQP Type property and the x-event-* headers.
const (
	EventTypePredictionCreated    = "PredictionCreated"
	EventVersionPredictionCreated = "1.0.0"
)
