package service

import (
	"context"
	"database/sql"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/db/models"
	"github.com/shopspring/decimal"
)

type CreateExpenseInput struct {
	Name         string
	BalanceAmt   decimal.Decimal
	ExpenseByID  int64
	GroupID      int64 // 0 for a non-group (friend) expense
	SplitBreakup []SplitInput
}

// SplitDetail is the read-only breakdown row used by detail views.
type SplitDetail struct {
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
	Status  string `json:"status"`
}

// CreateExpense validates membership, computes the split breakup and
// persists the expense with all of its splits as one transaction. A failure
// anywhere leaves no rows behind.
func (svc *SplitxService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	if err := svc.checkParticipants(ctx, input); err != nil {
		return nil, err
	}

	splits, err := ComputeSplits(input.BalanceAmt, input.ExpenseByID, input.SplitBreakup)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Name:        input.Name,
		BalanceAmt:  round2(input.BalanceAmt),
		ExpenseByID: input.ExpenseByID,
		GroupID:     input.GroupID,
		Status:      common.ExpenseStatusPending,
	}

	tx, err := svc.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}

	if _, err = tx.NewInsert().Model(expense).Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	splitModels := make([]*models.ExpenseSplit, len(splits))
	for i, s := range splits {
		splitModels[i] = &models.ExpenseSplit{
			ExpenseID:          expense.ID,
			ExpenseUserID:      s.ExpenseUserID,
			SplitType:          s.SplitType,
			Amount:             s.Amount,
			BalanceOutstanding: s.BalanceOutstanding,
			Status:             s.Status,
			Settled:            s.Settled,
		}
	}
	if _, err = tx.NewInsert().Model(&splitModels).Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	expense.Splits = splitModels

	if svc.Notifier != nil {
		if err := svc.Notifier.NotifyDebtCreated(ctx, expense); err != nil {
			svc.Logger.Errorf("Failed to notify debt creation expense_id:%v error: %v", expense.ID, err)
		}
	}

	return expense, nil
}

func (svc *SplitxService) checkParticipants(ctx context.Context, input CreateExpenseInput) error {
	for _, row := range input.SplitBreakup {
		if row.ExpenseUserID == input.ExpenseByID {
			continue
		}
		var (
			ok  bool
			err error
		)
		if input.GroupID != 0 {
			ok, err = svc.Membership.IsGroupMember(ctx, input.GroupID, row.ExpenseUserID)
		} else {
			ok, err = svc.Membership.IsFriend(ctx, input.ExpenseByID, row.ExpenseUserID)
		}
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFriendOrMember
		}
	}
	// the payer must belong to the group too
	if input.GroupID != 0 {
		ok, err := svc.Membership.IsGroupMember(ctx, input.GroupID, input.ExpenseByID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFriendOrMember
		}
	}
	return nil
}

func (svc *SplitxService) FindExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	var expense models.Expense
	err := svc.DB.NewSelect().
		Model(&expense).
		Where("expense.id = ?", expenseID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// SplitBreakdown returns the per-participant projection of an expense for
// detail views. Read-only, no side effects.
func (svc *SplitxService) SplitBreakdown(ctx context.Context, expenseID int64) ([]SplitDetail, error) {
	var splits []models.ExpenseSplit
	err := svc.DB.NewSelect().
		Model(&splits).
		Relation("ExpenseUser").
		Where("expense_split.expense_id = ?", expenseID).
		Order("expense_split.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]SplitDetail, 0, len(splits))
	for _, s := range splits {
		name := ""
		if s.ExpenseUser != nil {
			name = s.ExpenseUser.Username
		}
		details = append(details, SplitDetail{
			Name:    name,
			Amount:  s.Amount.StringFixed(2),
			Balance: s.BalanceOutstanding.StringFixed(2),
			Status:  s.Status,
		})
	}
	return details, nil
}

// GroupBalances aggregates the caller's position in a group: owed is what
// others still owe on splits that are not the caller's, borrowed is the
// caller's own outstanding. Both are zero decimals when nothing matches.
func (svc *SplitxService) GroupBalances(ctx context.Context, groupID, userID int64) (owed, borrowed decimal.Decimal, err error) {
	exists, err := svc.DB.NewSelect().Model((*models.Group)(nil)).Where("id = ?", groupID).Exists(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, decimal.Zero, ErrGroupNotFound
	}

	err = svc.DB.NewSelect().
		Model((*models.ExpenseSplit)(nil)).
		ColumnExpr("COALESCE(SUM(expense_split.balance_outstanding), 0)").
		Join("JOIN expenses AS expense ON expense.id = expense_split.expense_id").
		Where("expense.group_id = ?", groupID).
		Where("expense_split.balance_outstanding > 0").
		Where("expense_split.expense_user_id != ?", userID).
		Scan(ctx, &owed)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = svc.DB.NewSelect().
		Model((*models.ExpenseSplit)(nil)).
		ColumnExpr("COALESCE(SUM(expense_split.balance_outstanding), 0)").
		Join("JOIN expenses AS expense ON expense.id = expense_split.expense_id").
		Where("expense.group_id = ?", groupID).
		Where("expense_split.balance_outstanding > 0").
		Where("expense_split.expense_user_id = ?", userID).
		Scan(ctx, &borrowed)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return owed, borrowed, nil
}

// UserSettlementsForExpense lists a user's settled payments against one
// expense.
func (svc *SplitxService) UserSettlementsForExpense(ctx context.Context, userID, expenseID int64) ([]models.Settlement, error) {
	settlements := []models.Settlement{}
	err := svc.DB.NewSelect().
		Model(&settlements).
		Relation("ExpenseSplit").
		Where("expense_split.expense_user_id = ?", userID).
		Where("expense_split.expense_id = ?", expenseID).
		Where("settlement.deleted_on IS NULL").
		Where("settlement.status = ?", common.SettlementStatusSettled).
		Order("settlement.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return settlements, nil
}
