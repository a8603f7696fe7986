package service

import (
	"context"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/db/models"
)

// Notifier is the best-effort notification collaborator. Implementations
// must never block the request path for long and callers only ever log its
// errors.
type Notifier interface {
	SendReminder(ctx context.Context, toEmail, subject, body string) error
	NotifyDebtCreated(ctx context.Context, expense *models.Expense) error
	NotifyExpenseSettled(ctx context.Context, settlement *models.Settlement) error
}

// PubsubNotifier publishes notification events onto the service pubsub; the
// webhook subscription routine fans them out.
type PubsubNotifier struct {
	PubSub *Pubsub
}

func (n *PubsubNotifier) SendReminder(ctx context.Context, toEmail, subject, body string) error {
	n.PubSub.Publish(common.EventDebtReminded, Event{
		Type: common.EventDebtReminded,
		Data: EmailNotificationPayload{ToEmail: toEmail, Subject: subject, Body: body},
	})
	return nil
}

func (n *PubsubNotifier) NotifyDebtCreated(ctx context.Context, expense *models.Expense) error {
	n.PubSub.Publish(common.EventDebtCreated, Event{
		Type: common.EventDebtCreated,
		Data: expense,
	})
	return nil
}

func (n *PubsubNotifier) NotifyExpenseSettled(ctx context.Context, settlement *models.Settlement) error {
	n.PubSub.Publish(common.EventExpenseSettled, Event{
		Type: common.EventExpenseSettled,
		Data: settlement,
	})
	return nil
}
