package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/rabbitmq"
)

type ExpenseStatusUpdatePayload struct {
	ExpenseIDs []int64 `json:"expense_ids"`
}

type EmailNotificationPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EnqueueTask hands a typed job to the background runner. With RabbitMQ
// configured the task goes over the wire; otherwise it lands on the
// in-process queue consumed by StartTaskConsumerRoutine. Either way delivery
// is at-least-once, so handlers are idempotent.
func (svc *SplitxService) EnqueueTask(ctx context.Context, name string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := rabbitmq.Task{Name: name, Payload: raw}

	if svc.RabbitMQClient != nil {
		return svc.RabbitMQClient.PublishTask(ctx, task)
	}

	select {
	case svc.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue full, dropping task %s", name)
	}
}

// HandleTask dispatches a delivered task to its handler.
func (svc *SplitxService) HandleTask(ctx context.Context, task rabbitmq.Task) error {
	switch task.Name {
	case common.TaskExpenseStatusUpdate:
		var payload ExpenseStatusUpdatePayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return err
		}
		return svc.UpdateExpenseStatuses(ctx, payload.ExpenseIDs)

	case common.TaskNotificationEmail:
		var payload EmailNotificationPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return err
		}
		if svc.Notifier == nil {
			svc.Logger.Debugf("No notifier configured, skipping email to %s", payload.ToEmail)
			return nil
		}
		return svc.Notifier.SendReminder(ctx, payload.ToEmail, payload.Subject, payload.Body)

	default:
		svc.Logger.Warnf("Unknown task %s, skipping", task.Name)
		return nil
	}
}

// StartTaskConsumerRoutine runs the background task worker until ctx is
// cancelled.
func (svc *SplitxService) StartTaskConsumerRoutine(ctx context.Context) error {
	if svc.RabbitMQClient != nil {
		err := svc.RabbitMQClient.SubscribeToTasks(ctx, svc.HandleTask)
		if err != nil && err != context.Canceled {
			return err
		}
		return nil
	}

	if svc.taskQueue == nil {
		svc.InitTaskQueue(0)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case task := <-svc.taskQueue:
			svc.runWithRetry(ctx, task)
		}
	}
}

func (svc *SplitxService) runWithRetry(ctx context.Context, task rabbitmq.Task) {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = time.Minute

	err := backoff.Retry(func() error {
		return svc.HandleTask(ctx, task)
	}, backoff.WithContext(exponentialBackoff, ctx))
	if err != nil {
		svc.Logger.Errorf("Task %s failed after retries: %v", task.Name, err)
	}
}
