package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/db/models"
	"github.com/getsplitx/splitx.go/lib/security"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// CreatePendingSettlement binds a fresh payment token to the caller's split
// of an expense. The requested amount may never exceed what is still
// outstanding on that split.
func (svc *SplitxService) CreatePendingSettlement(ctx context.Context, expenseID, userID int64, amount decimal.Decimal) (*models.Settlement, error) {
	amount = round2(amount)

	var split models.ExpenseSplit
	err := svc.DB.NewSelect().
		Model(&split).
		Where("expense_split.expense_id = ?", expenseID).
		Where("expense_split.expense_user_id = ?", userID).
		Where("expense_split.balance_outstanding >= ?", amount).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAmountExceedsOutstanding
		}
		return nil, err
	}

	paymentID, err := makePaymentID()
	if err != nil {
		return nil, err
	}

	settlement := &models.Settlement{
		PaymentID:      paymentID,
		ExpenseSplitID: split.ID,
		Amount:         amount,
		Status:         common.SettlementStatusPending,
	}
	if _, err = svc.DB.NewInsert().Model(settlement).Exec(ctx); err != nil {
		return nil, err
	}
	settlement.ExpenseSplit = &split

	return settlement, nil
}

// GeneratePaymentLink builds the signed settlement URL for a pending payment
// token.
func (svc *SplitxService) GeneratePaymentLink(userID, expenseID int64, paymentUID string) string {
	signature := security.GeneratePaymentSignature(userID, expenseID, paymentUID, svc.Config.PaymentLinkSecret)
	return svc.Config.BaseUrl + fmt.Sprintf(common.PaymentLinkPath, paymentUID, signature)
}

// GetSettlementByPaymentID loads a settlement with its split and expense.
// Unknown or soft-deleted tokens surface as ErrInvalidPaymentLink.
func (svc *SplitxService) GetSettlementByPaymentID(ctx context.Context, paymentUID string) (*models.Settlement, error) {
	var settlement models.Settlement
	err := svc.DB.NewSelect().
		Model(&settlement).
		Relation("ExpenseSplit").
		Relation("ExpenseSplit.Expense").
		Where("settlement.payment_id = ?", paymentUID).
		Where("settlement.deleted_on IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidPaymentLink
		}
		return nil, err
	}
	return &settlement, nil
}

// ResolveSettlement drives the Pending -> Settled / Pending -> Failed
// transition for a payment token.
//
// The settlement row is locked for the duration of the transaction, so two
// concurrent resolutions of the same token serialize and the loser observes
// the terminal state and fails with ErrSettlementAlreadyResolved instead of
// double-applying balance changes.
func (svc *SplitxService) ResolveSettlement(ctx context.Context, paymentUID, status, mode string) (*models.Settlement, error) {
	tx, err := svc.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}

	var settlement models.Settlement
	err = tx.NewSelect().
		Model(&settlement).
		Where("settlement.payment_id = ?", paymentUID).
		Where("settlement.deleted_on IS NULL").
		For("UPDATE").
		Limit(1).
		Scan(ctx)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrInvalidPaymentLink
		}
		return nil, err
	}

	// fail closed: a terminal settlement is immutable
	if settlement.Status != common.SettlementStatusPending {
		tx.Rollback()
		return nil, ErrSettlementAlreadyResolved
	}

	settlement.IsOffline = mode == common.PaymentModeOffline

	if status != common.SettlementStatusSettled {
		settlement.Status = common.SettlementStatusFailed
		if _, err = tx.NewUpdate().Model(&settlement).WherePK().Exec(ctx); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err = tx.Commit(); err != nil {
			return nil, err
		}
		return &settlement, nil
	}

	var target models.ExpenseSplit
	err = tx.NewSelect().
		Model(&target).
		Where("expense_split.id = ?", settlement.ExpenseSplitID).
		For("UPDATE").
		Limit(1).
		Scan(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// every split of the target user within the expense set is paid down;
	// with single-expense settlements this is the one split the token bound
	expenseIDs := []int64{target.ExpenseID}
	var splits []models.ExpenseSplit
	err = tx.NewSelect().
		Model(&splits).
		Where("expense_split.expense_id IN (?)", bun.In(expenseIDs)).
		Where("expense_split.expense_user_id = ?", target.ExpenseUserID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range splits {
		split := &splits[i]
		remaining := split.BalanceOutstanding.Sub(settlement.Amount)
		if remaining.IsNegative() {
			tx.Rollback()
			return nil, ErrAmountExceedsOutstanding
		}
		split.BalanceOutstanding = remaining
		if remaining.IsZero() {
			split.Status = common.SplitStatusPaid
		} else {
			split.Status = common.SplitStatusPending
		}
		split.Settled = true
		if _, err = tx.NewUpdate().Model(split).WherePK().Exec(ctx); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	settlement.Status = common.SettlementStatusSettled
	if _, err = tx.NewUpdate().Model(&settlement).WherePK().Exec(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// status recomputation is decoupled from the settlement transaction;
	// the task is idempotent and safe to deliver more than once
	if err := svc.EnqueueTask(ctx, common.TaskExpenseStatusUpdate, ExpenseStatusUpdatePayload{ExpenseIDs: expenseIDs}); err != nil {
		svc.Logger.Errorf("Failed to enqueue expense status update payment_id:%v error: %v", paymentUID, err)
	}

	if svc.Notifier != nil {
		if err := svc.Notifier.NotifyExpenseSettled(ctx, &settlement); err != nil {
			svc.Logger.Errorf("Failed to notify settlement payment_id:%v error: %v", paymentUID, err)
		}
	}

	return &settlement, nil
}

// UpdateExpenseStatuses flips expenses to Paid once none of their splits has
// both a Pending status and a positive outstanding balance. Re-running it is
// harmless.
func (svc *SplitxService) UpdateExpenseStatuses(ctx context.Context, expenseIDs []int64) error {
	for _, expenseID := range expenseIDs {
		open, err := svc.DB.NewSelect().
			Model((*models.ExpenseSplit)(nil)).
			Where("expense_id = ?", expenseID).
			Where("status = ?", common.SplitStatusPending).
			Where("balance_outstanding > 0").
			Exists(ctx)
		if err != nil {
			return err
		}
		if open {
			continue
		}
		_, err = svc.DB.NewUpdate().
			Model((*models.Expense)(nil)).
			Set("status = ?", common.ExpenseStatusPaid).
			Where("id = ?", expenseID).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
