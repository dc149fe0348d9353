package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	feed "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/feed"
)

// RefreshHandler reacts to a refresh committed by any process.
type RefreshHandler func(ctx context.Context, event feed.RefreshEvent) error

// Consumer subscribes an exclusive queue to the refresh exchange and hands
// every event to a RefreshHandler.
type Consumer struct {
	url      string
	exchange string
	handle   RefreshHandler
	logger   logrus.FieldLogger

	conn    *amqp.Connection
	channel *amqp.Channel
	wg      sync.WaitGroup
}

func NewConsumer(url, exchange string, handle RefreshHandler, logger logrus.FieldLogger) (*Consumer, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if handle == nil {
		return nil, errors.New("refresh handler is required")
	}
	return &Consumer{
		url:      url,
		exchange: exchange,
		handle:   handle,
		logger:   logger.WithField("component", "broker"),
	}, nil
}

// Start connects, binds a server-named queue and begins consuming.
func (c *Consumer) Start(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		c.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	c.channel = ch

	if err := ch.ExchangeDeclare(c.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		c.Close()
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}
	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		c.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue.Name, "", c.exchange, false, nil); err != nil {
		c.Close()
		return fmt.Errorf("bind queue %s to %s: %w", queue.Name, c.exchange, err)
	}
	deliveries, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		c.Close()
		return fmt.Errorf("start consume: %w", err)
	}

	c.wg.Add(1)
	go c.consumeLoop(ctx, deliveries)
	c.logger.WithField("exchange", c.exchange).Info("refresh consumer started")
	return nil
}

// Close stops consumption and waits for the loop to exit.
func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.wg.Wait()
}

func (c *Consumer) consumeLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			if err := c.handleDelivery(ctx, delivery.Body); err != nil {
				c.logger.WithError(err).Warn("failed to process refresh event")
				_ = delivery.Nack(false, false)
				continue
			}
			if err := delivery.Ack(false); err != nil {
				c.logger.WithError(err).Warn("failed to ack delivery")
			}
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, body []byte) error {
	var event feed.RefreshEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode refresh event: %w", err)
	}
	if event.Kind == "" {
		return errors.New("refresh event without kind")
	}
	return c.handle(ctx, event)
}
