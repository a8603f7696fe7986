package rabbitmq

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"

	msgReconnect = "RECONNECT_DONE"
	msgClose     = "CLOSE"
)

type listenerMsg = string

type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string) error
	Close() error
}

type defaultAMQPClient struct {
	conn *amqp.Connection
	uri  string

	// It is recommended that, when possible, publishers and consumers
	// use separate connections so that consumers are isolated from potential
	// flow control measures that may be applied to publishing connections.
	consumeChannel *amqp.Channel
	publishChannel *amqp.Channel

	notifyCloseChan chan *amqp.Error

	listeners []chan listenerMsg
	reconFlag atomic.Bool

	logger *lecho.Logger
}

type AMQPOption = func(client *defaultAMQPClient)

func WithAmqpLogger(logger *lecho.Logger) AMQPOption {
	return func(client *defaultAMQPClient) {
		client.logger = logger
	}
}

func DialAMQP(uri string, options ...AMQPOption) (AMQPClient, error) {
	client := &defaultAMQPClient{
		uri: uri,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(client)
	}

	err := client.connect()
	if err != nil {
		return client, err
	}

	client.listeners = []chan listenerMsg{}

	go client.reconnectionLoop()

	return client, nil
}

func (c *defaultAMQPClient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(time.Second * 3),
	})
	if err != nil {
		return err
	}

	consumeChannel, err := conn.Channel()
	if err != nil {
		return err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		return err
	}

	notifyCloseChan := make(chan *amqp.Error)
	conn.NotifyClose(notifyCloseChan)

	c.conn = conn
	c.consumeChannel = consumeChannel
	c.publishChannel = publishChannel
	c.notifyCloseChan = notifyCloseChan

	return nil
}

func (c *defaultAMQPClient) reconnectionLoop() {
	for amqpError := range c.notifyCloseChan {
		c.logger.Error(amqpError)

		exponentialBackoff := backoff.NewExponentialBackOff()
		exponentialBackoff.MaxInterval = time.Second * 10
		exponentialBackoff.MaxElapsedTime = time.Minute

		c.reconFlag.Store(true)

		c.logger.Info("amqp: trying to reconnect...")
		err := backoff.Retry(c.connect, exponentialBackoff)
		if err != nil {
			for _, listener := range c.listeners {
				listener <- msgClose
			}

			return
		}

		c.reconFlag.Store(false)
		c.logger.Info("amqp: succesfully reconnected")

		for _, listener := range c.listeners {
			listener <- msgReconnect
		}
	}
}

func (c *defaultAMQPClient) Close() error {
	return c.conn.Close()
}

func (c *defaultAMQPClient) ExchangeDeclare(name, kind string) error {
	// Short lived management channel, the consumer/publisher channels stay
	// dedicated to their role.
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	// Durable and non-auto-deleted exchanges survive server restarts.
	return ch.ExchangeDeclare(name, kind, true, false, false, false, nil)
}

func (c *defaultAMQPClient) consume(ctx context.Context, exchange, routingKey, queueName string) (<-chan amqp.Delivery, error) {
	queue, err := c.consumeChannel.QueueDeclare(
		queueName,
		// Durable and non-auto-deleted queues survive server restarts and
		// remain declared when there are no remaining bindings.
		true,
		false,
		// Non-exclusive: multiple splitx instances spread the task load
		// between them.
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	err = c.consumeChannel.QueueBind(queue.Name, routingKey, exchange, false, nil)
	if err != nil {
		return nil, err
	}

	return c.consumeChannel.ConsumeWithContext(ctx, queue.Name, "", false, false, false, false, nil)
}

func (c *defaultAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string) (<-chan amqp.Delivery, error) {
	deliveries, err := c.consume(ctx, exchange, routingKey, queueName)
	if err != nil {
		return nil, err
	}

	clientChannel := make(chan amqp.Delivery)

	notifyReconnectChan := make(chan listenerMsg, 2)
	c.listeners = append(c.listeners, notifyReconnectChan)

	// Wrapper around the raw delivery channel. The happy path passes
	// deliveries straight through; after a successful reconnect the listener
	// swaps in a fresh deliveries channel from the new amqp channels.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-notifyReconnectChan:
				switch msg {
				case msgReconnect:
					d, err := c.consume(ctx, exchange, routingKey, queueName)
					if err != nil {
						c.logger.Error(err)

						return
					}

					c.logger.Infof("amqp: resumed consuming messages with routingkey: %s from new deliveries channel", routingKey)
					deliveries = d

				case msgClose:
					close(clientChannel)
					return

				default:
					c.logger.Warnf("amqp: unrecognized message sent to listener: %s", msg)
				}

			case delivery, ok := <-deliveries:
				if ok {
					clientChannel <- delivery
				}
			}
		}
	}()

	return clientChannel, nil
}

func (c *defaultAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	// Wait out an in-flight reconnect instead of publishing into a dead
	// channel.
	if c.reconFlag.Load() {
		exponentialBackoff := backoff.NewExponentialBackOff()
		exponentialBackoff.MaxInterval = time.Second * 10
		exponentialBackoff.MaxElapsedTime = time.Minute

		err := backoff.Retry(func() error {
			if c.reconFlag.Load() {
				return errors.New("amqp: trying to publish during reconnect")
			}

			return nil
		}, exponentialBackoff)

		if err != nil {
			return err
		}
	}

	return c.publishChannel.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
