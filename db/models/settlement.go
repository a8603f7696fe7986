package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Settlement : A single attempt to pay down an expense split, identified by
// an opaque payment token. Pending rows transition to Settled or Failed
// exactly once; rows are never hard-deleted (DeletedOn is a soft marker).
type Settlement struct {
	ID             int64           `json:"id" bun:",pk,autoincrement"`
	PaymentID      string          `json:"payment_id" bun:",unique,notnull"`
	ExpenseSplitID int64           `json:"expense_split_id" bun:",notnull"`
	ExpenseSplit   *ExpenseSplit   `json:"-" bun:"rel:belongs-to,join:expense_split_id=id"`
	Amount         decimal.Decimal `json:"amount" bun:"type:numeric(10,2),notnull"`
	Status         string          `json:"status" bun:",default:'Pending'"`
	IsOffline      bool            `json:"is_offline" bun:",nullzero"`
	DeletedOn      bun.NullTime    `json:"-" bun:",nullzero"`
	CreatedAt      time.Time       `json:"created_on" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime    `json:"updated_at"`
}

func (s *Settlement) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		s.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Settlement)(nil)
