package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/db/models"
	"github.com/shopspring/decimal"
)

const (
	debitReminderSubject = "Reminder : Payment Notification"
	debitReminderBody    = "Hi %s This is a reminder that you owe me %s rs for expenses on Split-X. Please settle asap.\nThank You! \n%s"
)

// NotifyUserAboutDebit aggregates everything a borrower still owes a lender
// and enqueues a reminder email. No-op error when nothing is outstanding.
func (svc *SplitxService) NotifyUserAboutDebit(ctx context.Context, lenderID, borrowerID int64) error {
	var borrower models.User
	err := svc.DB.NewSelect().Model(&borrower).Where("id = ?", borrowerID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrExpenseNotFound
		}
		return err
	}

	var lender models.User
	err = svc.DB.NewSelect().Model(&lender).Where("id = ?", lenderID).Limit(1).Scan(ctx)
	if err != nil {
		return err
	}

	var owed decimal.Decimal
	err = svc.DB.NewSelect().
		Model((*models.ExpenseSplit)(nil)).
		ColumnExpr("COALESCE(SUM(expense_split.balance_outstanding), 0)").
		Join("JOIN expenses AS expense ON expense.id = expense_split.expense_id").
		Where("expense.expense_by_id = ?", lenderID).
		Where("expense_split.expense_user_id = ?", borrowerID).
		Scan(ctx, &owed)
	if err != nil {
		return err
	}
	if owed.IsZero() {
		return ErrNothingOutstanding
	}

	body := fmt.Sprintf(debitReminderBody, capitalize(borrower.Username), owed.StringFixed(2), capitalize(lender.Username))
	return svc.EnqueueTask(ctx, common.TaskNotificationEmail, EmailNotificationPayload{
		ToEmail: borrower.Email,
		Subject: debitReminderSubject,
		Body:    body,
	})
}

type debtReminderRow struct {
	LenderName    string          `bun:"lender_name"`
	BorrowerName  string          `bun:"borrower_name"`
	BorrowerEmail string          `bun:"borrower_email"`
	Total         decimal.Decimal `bun:"total"`
}

// SweepDebtReminders enqueues one reminder per (lender, borrower) pair with
// outstanding debt. Used by the periodic reminder routine.
func (svc *SplitxService) SweepDebtReminders(ctx context.Context) error {
	var rows []debtReminderRow
	err := svc.DB.NewSelect().
		Model((*models.ExpenseSplit)(nil)).
		ColumnExpr("lender.username AS lender_name").
		ColumnExpr("borrower.username AS borrower_name").
		ColumnExpr("borrower.email AS borrower_email").
		ColumnExpr("SUM(expense_split.balance_outstanding) AS total").
		Join("JOIN expenses AS expense ON expense.id = expense_split.expense_id").
		Join("JOIN users AS lender ON lender.id = expense.expense_by_id").
		Join("JOIN users AS borrower ON borrower.id = expense_split.expense_user_id").
		Where("expense_split.balance_outstanding > 0").
		GroupExpr("lender.username, borrower.username, borrower.email").
		Scan(ctx, &rows)
	if err != nil {
		return err
	}

	for _, row := range rows {
		body := fmt.Sprintf(debitReminderBody, capitalize(row.BorrowerName), row.Total.StringFixed(2), capitalize(row.LenderName))
		err := svc.EnqueueTask(ctx, common.TaskNotificationEmail, EmailNotificationPayload{
			ToEmail: row.BorrowerEmail,
			Subject: debitReminderSubject,
			Body:    body,
		})
		if err != nil {
			svc.Logger.Errorf("Failed to enqueue reminder for %s: %v", row.BorrowerEmail, err)
		}
	}
	return nil
}

// StartReminderSweepRoutine periodically runs the debt reminder sweep.
func (svc *SplitxService) StartReminderSweepRoutine(ctx context.Context) {
	interval := time.Duration(svc.Config.ReminderSweepInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.SweepDebtReminders(ctx); err != nil {
				svc.Logger.Errorf("Reminder sweep failed: %v", err)
			}
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
