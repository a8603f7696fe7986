package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/getsplitx/splitx.go/common"
)

// StartWebhookSubscription forwards notification events to the configured
// webhook URL until ctx is cancelled. Delivery is best effort: failures are
// logged and the event is dropped.
func (svc *SplitxService) StartWebhookSubscription(ctx context.Context, url string) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	debtCreated := make(chan Event)
	debtReminded := make(chan Event)
	expenseSettled := make(chan Event)
	svc.EventPubSub.Subscribe(common.EventDebtCreated, debtCreated)
	svc.EventPubSub.Subscribe(common.EventDebtReminded, debtReminded)
	svc.EventPubSub.Subscribe(common.EventExpenseSettled, expenseSettled)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-debtCreated:
			svc.postToWebhook(ev, url)
		case ev := <-debtReminded:
			svc.postToWebhook(ev, url)
		case ev := <-expenseSettled:
			svc.postToWebhook(ev, url)
		}
	}
}

func (svc *SplitxService) postToWebhook(event Event, url string) {

	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(url, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
