package rabbitmq_producer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/pkg/rabbitmq/rabbitmq_common"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("producer: publisher is closed")

// PublisherConfig describes the exchange a Publisher writes to.
type PublisherConfig struct {
	ExchangeName       string // "" publishes to the default exchange
	ExchangeType       string // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	InternalExchange   bool
	ExchangeArgs       amqp.Table

	// DeclareExchangeIfMissing declares the exchange on every (re)open; otherwise it must already exist.
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (cfg PublisherConfig) Validate() error {
	if cfg.DeclareExchangeIfMissing && cfg.ExchangeName == "" {
		return fmt.Errorf("producer: exchange name is required when DeclareExchangeIfMissing is true")
	}
	if cfg.DeclareExchangeIfMissing && cfg.ExchangeType == "" {
		return fmt.Errorf("producer: exchange type is required when DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher publishes on one channel taken from a ChannelSource and reopens it
// after the broker drops the connection.
// amqp channels are not safe for concurrent publishing, so Publish serialises.
type Publisher struct {
	config  PublisherConfig
	source  rabbitmq_common.ChannelSource
	channel rabbitmq_common.Channel
	closed  bool
	mu      sync.Mutex

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, source rabbitmq_common.ChannelSource) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("producer: channel source cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{
		config: cfg,
		source: source,
		Logger: logger,
	}
	if err := p.ensureChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

// ensureChannel opens and prepares a channel unless the current one is still open.
// Callers hold p.mu.
func (p *Publisher) ensureChannel() error {
	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	p.channel = nil

	ch, err := p.source.OpenChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel: %w", err)
	}
	p.Logger.Debug("Channel obtained from ConnectionManager")

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return nil
}

// Publish sends msg, reopening the channel first if it was closed.
// A publish that fails because the channel died meanwhile is retried once on a new channel.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = p.ensureChannel(); err != nil {
			return err
		}
		err = p.channel.PublishWithContext(
			ctx,
			p.config.ExchangeName,
			routingKey,
			false, // mandatory
			false, // immediate
			msg,
		)
		if err == nil {
			return nil
		}
		if !p.channel.IsClosed() || ctx.Err() != nil {
			break
		}
		p.Logger.Warn("Channel closed during publish, reopening", "routing_key", routingKey)
	}
	return fmt.Errorf("producer: failed to publish message: %w", err)
}

// Close closes the channel; the connection belongs to the ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var err error
	if p.channel != nil && !p.channel.IsClosed() {
		if err = p.channel.Close(); err != nil {
			p.Logger.Error(err, "Error closing channel")
		}
	}
	p.channel = nil
	p.Logger.Info("Producer closed.")
	return err
}
