package amqp

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

const publishTimeout = 5 * time.Second

type config interface {
	URL() string
	Exchange() string
	Queue() string
}

// channel is the part of *amqp091.Channel the client uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Client struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	queueName    string
	now          func() time.Time
}

func NewClient(cfg config) (*Client, error) {
	conn, err := amqp091.Dial(cfg.URL())
	if err != nil {
		return nil, errors.Wrap(err, "dial AMQP")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	client, err := newClient(ch, cfg.Exchange(), cfg.Queue())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

func newClient(ch channel, exchange, queue string) (*Client, error) {
	client := &Client{
		channel:      ch,
		exchangeName: exchange,
		queueName:    queue,
		now:          time.Now,
	}
	if err := client.setup(); err != nil {
		_ = ch.Close()
		return nil, errors.Wrap(err, "setup exchange and queue")
	}
	return client, nil
}

// setup declares a durable direct exchange with one queue bound by its name.
func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(c.exchangeName, "direct", true, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "declare exchange")
	}

	_, err = c.channel.QueueDeclare(c.queueName, true, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "declare queue")
	}

	err = c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil)
	if err != nil {
		return errors.Wrap(err, "bind queue")
	}
	return nil
}

// Publish sends body as a persistent JSON message. key is recorded as the
// message type, routing always goes to the configured queue.
func (c *Client) Publish(ctx context.Context, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(ctx, c.exchangeName, c.queueName, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    c.now(),
			Type:         key,
			Body:         body,
		})
	if err != nil {
		return errors.Wrap(err, "publish message")
	}

	logger.Debug("event published", zap.String("exchange", c.exchangeName), zap.String("type", key))
	return nil
}

func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			logger.Error("failed to close amqp channel", zap.Error(err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			logger.Error("failed to close amqp connection", zap.Error(err))
		}
	}
}
