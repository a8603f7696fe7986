package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Expense : Expense Model
//
// Status is mutated only by the settlement flow: it flips to Paid once no
// split of the expense has an outstanding balance.
type Expense struct {
	ID          int64           `json:"id" bun:",pk,autoincrement"`
	Name        string          `json:"name" bun:",notnull"`
	BalanceAmt  decimal.Decimal `json:"balance_amt" bun:"type:numeric(10,2),notnull"`
	ExpenseByID int64           `json:"expense_by" bun:",notnull"`
	ExpenseBy   *User           `json:"-" bun:"rel:belongs-to,join:expense_by_id=id"`
	GroupID     int64           `json:"group_id,omitempty" bun:",nullzero"`
	Group       *Group          `json:"-" bun:"rel:belongs-to,join:group_id=id"`
	Status      string          `json:"status" bun:",default:'Pending'"`
	Splits      []*ExpenseSplit `json:"splits,omitempty" bun:"rel:has-many,join:id=expense_id"`
	CreatedAt   time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime    `json:"updated_at"`
}

func (e *Expense) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		e.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Expense)(nil)
