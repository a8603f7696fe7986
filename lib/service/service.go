package service

import (
	"errors"

	"github.com/getsplitx/splitx.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

// Sentinel errors of the ledger and settlement core. Controllers map these
// onto lib/responses values.
var (
	ErrNoParticipants           = errors.New("at least one split participant is required")
	ErrMultipleSplitType        = errors.New("please select only one split type")
	ErrMissingPayer             = errors.New("at least one user must have paid")
	ErrPayerMismatch            = errors.New("the user who made the expense must have paid")
	ErrMissingSplitValue        = errors.New("split value required for all participants")
	ErrExactAmountMismatch      = errors.New("sum of split values must be equal to balance amount for exact amount split type")
	ErrPercentageSumMismatch    = errors.New("sum of split values must be 100 for percentage split type")
	ErrNotFriendOrMember        = errors.New("all participants must be friends of the payer or members of the group")
	ErrAmountExceedsOutstanding = errors.New("amount is more than outstanding expense amount")
	ErrExpenseNotFound          = errors.New("expense not found")
	ErrGroupNotFound            = errors.New("group not found")
	ErrInvalidPaymentLink       = errors.New("invalid payment link")
	ErrSettlementAlreadyResolved = errors.New("settlement already resolved")
	ErrNothingOutstanding       = errors.New("all expenses are paid")
)

type SplitxService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	Membership     MembershipChecker
	Notifier       Notifier
	EventPubSub    *Pubsub
	RabbitMQClient rabbitmq.Client

	// In-process task queue used when no RabbitMQ client is configured.
	taskQueue chan rabbitmq.Task
}

// InitTaskQueue sizes the in-process fallback queue. Call once before the
// task consumer routine starts.
func (svc *SplitxService) InitTaskQueue(size int) {
	if size <= 0 {
		size = 1024
	}
	svc.taskQueue = make(chan rabbitmq.Task, size)
}
