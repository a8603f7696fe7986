package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ExpenseSplit : Per-participant share of an expense.
//
// Amount is immutable after creation. BalanceOutstanding only ever decreases,
// reaching exactly zero when the split is fully settled.
type ExpenseSplit struct {
	ID                 int64           `json:"id" bun:",pk,autoincrement"`
	ExpenseID          int64           `json:"expense_id" bun:",notnull"`
	Expense            *Expense        `json:"-" bun:"rel:belongs-to,join:expense_id=id"`
	ExpenseUserID      int64           `json:"expense_user" bun:",notnull"`
	ExpenseUser        *User           `json:"-" bun:"rel:belongs-to,join:expense_user_id=id"`
	SplitType          string          `json:"split_type" bun:",notnull"`
	Amount             decimal.Decimal `json:"amount" bun:"type:numeric(10,2),notnull"`
	BalanceOutstanding decimal.Decimal `json:"balance_outstanding" bun:"type:numeric(10,2),notnull"`
	Status             string          `json:"status" bun:",default:'Pending'"`
	Settled            bool            `json:"settled" bun:",nullzero"`
	CreatedAt          time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt          bun.NullTime    `json:"updated_at"`
}

func (s *ExpenseSplit) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		s.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*ExpenseSplit)(nil)
