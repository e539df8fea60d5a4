package rabbitmq_common

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel used by publishers.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelSource hands out fresh channels, reconnecting first if the connection was lost.
type ChannelSource interface {
	OpenChannel() (Channel, error)
}

var _ Channel = (*amqp.Channel)(nil)

// OpenChannel implements ChannelSource.
func (m *ConnectionManager) OpenChannel() (Channel, error) {
	_, ch, err := m.GetChannel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}
