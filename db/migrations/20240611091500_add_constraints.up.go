package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- amounts are always positive, outstanding never exceeds the share
				alter table expenses
				ADD CONSTRAINT check_balance_amt_positive
				CHECK (balance_amt > 0);

				alter table expense_splits
				ADD CONSTRAINT check_split_amount_positive
				CHECK (amount >= 0);

				alter table expense_splits
				ADD CONSTRAINT check_outstanding_range
				CHECK (balance_outstanding >= 0 AND balance_outstanding <= amount);

				alter table settlements
				ADD CONSTRAINT check_settlement_amount_positive
				CHECK (amount > 0);

			-- a payment token identifies at most one pending request
				CREATE UNIQUE INDEX settlements_one_pending_per_split
				ON settlements (expense_split_id)
				WHERE status = 'Pending' AND deleted_on IS NULL;
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
