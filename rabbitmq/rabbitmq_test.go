package rabbitmq_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/getsplitx/splitx.go/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type fakeAMQPClient struct {
	deliveries chan amqp.Delivery
	published  []amqp.Publishing
	routingKey []string
	exchanges  []string
	closed     bool
}

func newFakeAMQPClient() *fakeAMQPClient {
	return &fakeAMQPClient{deliveries: make(chan amqp.Delivery, 8)}
}

func (f *fakeAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, msg)
	f.routingKey = append(f.routingKey, key)
	return nil
}

func (f *fakeAMQPClient) ExchangeDeclare(name, kind string) error {
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeAMQPClient) Close() error {
	f.closed = true
	return nil
}

func TestNewClientDeclaresTaskExchange(t *testing.T) {
	fake := newFakeAMQPClient()
	_, err := rabbitmq.NewClient(fake, rabbitmq.WithTaskExchange("test_tasks"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"test_tasks"}, fake.exchanges)
}

func TestPublishTaskUsesNamedRoutingKey(t *testing.T) {
	fake := newFakeAMQPClient()
	client, err := rabbitmq.NewClient(fake)
	assert.NoError(t, err)

	payload, _ := json.Marshal(map[string]interface{}{"expense_ids": []int64{1, 2}})
	err = client.PublishTask(context.Background(), rabbitmq.Task{
		Name:    "expense_status_update",
		Payload: payload,
	})
	assert.NoError(t, err)
	assert.Len(t, fake.published, 1)
	assert.Equal(t, "task.expense_status_update", fake.routingKey[0])

	var decoded rabbitmq.Task
	assert.NoError(t, json.Unmarshal(fake.published[0].Body, &decoded))
	assert.Equal(t, "expense_status_update", decoded.Name)
}

func TestSubscribeToTasksDispatchesToHandler(t *testing.T) {
	fake := newFakeAMQPClient()
	client, err := rabbitmq.NewClient(fake)
	assert.NoError(t, err)

	body, _ := json.Marshal(rabbitmq.Task{Name: "notification_email", Payload: json.RawMessage(`{}`)})
	fake.deliveries <- amqp.Delivery{Body: body}

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan rabbitmq.Task, 1)
	go func() {
		_ = client.SubscribeToTasks(ctx, func(ctx context.Context, task rabbitmq.Task) error {
			received <- task
			return nil
		})
	}()

	select {
	case task := <-received:
		assert.Equal(t, "notification_email", task.Name)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
	cancel()
}

func TestSubscribeToTasksSkipsUndecodableDelivery(t *testing.T) {
	fake := newFakeAMQPClient()
	client, err := rabbitmq.NewClient(fake)
	assert.NoError(t, err)

	fake.deliveries <- amqp.Delivery{Body: []byte("not json")}
	body, _ := json.Marshal(rabbitmq.Task{Name: "expense_status_update", Payload: json.RawMessage(`{}`)})
	fake.deliveries <- amqp.Delivery{Body: body}

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan rabbitmq.Task, 1)
	go func() {
		_ = client.SubscribeToTasks(ctx, func(ctx context.Context, task rabbitmq.Task) error {
			received <- task
			return nil
		})
	}()

	select {
	case task := <-received:
		// the garbage delivery was dropped, the valid one still arrived
		assert.Equal(t, "expense_status_update", task.Name)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
	cancel()
}
