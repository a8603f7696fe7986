package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of
// heap memory. Instead of allocating new memory every time we encode a task
// we reuse buffers from this pool; it scales with the number of publishing
// goroutines.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

// Task is a typed background job. Payload stays raw until the handler for
// the task name decodes it.
type Task struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// TaskHandler processes one delivered task. Returning an error requeues the
// delivery, so handlers must be idempotent (at-least-once execution).
type TaskHandler = func(ctx context.Context, task Task) error

type Client interface {
	// PublishTask enqueues a typed job on the task exchange.
	PublishTask(ctx context.Context, task Task) error
	// SubscribeToTasks consumes tasks until the context is cancelled.
	SubscribeToTasks(ctx context.Context, handler TaskHandler) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	taskExchange      string
	taskConsumerQueue string
}

type ClientOption = func(client *DefaultClient)

func WithTaskExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.taskExchange = exchange
	}
}

func WithTaskConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.taskConsumerQueue = name
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		taskExchange:      "splitx_tasks",
		taskConsumerQueue: "splitx_task_consumer",
	}

	for _, opt := range options {
		opt(client)
	}

	err := client.amqpClient.ExchangeDeclare(client.taskExchange, "topic")
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) PublishTask(ctx context.Context, task Task) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := json.NewEncoder(payload).Encode(task)
	if err != nil {
		return err
	}

	return client.amqpClient.PublishWithContext(ctx,
		client.taskExchange,
		"task."+task.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
}

func (client *DefaultClient) SubscribeToTasks(ctx context.Context, handler TaskHandler) error {
	deliveryChan, err := client.amqpClient.Listen(ctx, client.taskExchange, "task.#", client.taskConsumerQueue)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled

		case delivery, ok := <-deliveryChan:
			if !ok {
				return nil
			}

			var task Task
			if err := json.Unmarshal(delivery.Body, &task); err != nil {
				client.logger.Errorf("Could not decode task, skipping: %v", err)
				delivery.Nack(false, false)

				continue
			}

			if err := handler(ctx, task); err != nil {
				client.logger.Errorf("Task %s failed, requeueing: %v", task.Name, err)
				sentry.CaptureException(err)
				delivery.Nack(false, true)

				continue
			}

			delivery.Ack(false)
		}
	}
}
