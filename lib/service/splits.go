package service

import (
	"github.com/getsplitx/splitx.go/common"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SplitInput is one participant's row of the requested split breakup.
// SplitValue carries the exact amount for Exact splits and the percentage
// for Percentage splits; it is ignored for Equal splits. Status "Paid" marks
// a payer.
type SplitInput struct {
	ExpenseUserID int64
	SplitType     string
	SplitValue    *decimal.Decimal
	Status        string
}

// SplitResult is one participant's computed, validated share.
type SplitResult struct {
	ExpenseUserID      int64
	SplitType          string
	Amount             decimal.Decimal
	BalanceOutstanding decimal.Decimal
	Status             string
	Settled            bool
}

// round2 quantizes to 2 decimal places, half-up. All monetary arithmetic in
// the ledger goes through decimal.Decimal; floats never enter the math.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeSplits turns a raw expense amount plus its split breakup into
// per-participant shares that reconcile against balanceAmt to the cent.
//
// Rounding remainders (Equal and Percentage splits) are assigned to the
// first participant in input order, so sum(amount) == balanceAmt always
// holds exactly.
func ComputeSplits(balanceAmt decimal.Decimal, expenseByID int64, breakup []SplitInput) ([]SplitResult, error) {
	if len(breakup) == 0 {
		return nil, ErrNoParticipants
	}

	splitType := breakup[0].SplitType
	for _, row := range breakup {
		if row.SplitType != splitType {
			return nil, ErrMultipleSplitType
		}
	}

	payerFound := false
	expenseByPaid := false
	for _, row := range breakup {
		if row.Status == common.SplitStatusPaid {
			payerFound = true
			if row.ExpenseUserID == expenseByID {
				expenseByPaid = true
			}
		}
	}
	if !payerFound {
		return nil, ErrMissingPayer
	}
	if !expenseByPaid {
		return nil, ErrPayerMismatch
	}

	balanceAmt = round2(balanceAmt)

	amounts, err := splitAmounts(splitType, balanceAmt, breakup)
	if err != nil {
		return nil, err
	}

	results := make([]SplitResult, len(breakup))
	for i, row := range breakup {
		outstanding := amounts[i]
		status := common.SplitStatusPending
		if row.Status == common.SplitStatusPaid {
			outstanding = decimal.Zero
			status = common.SplitStatusPaid
		}
		results[i] = SplitResult{
			ExpenseUserID:      row.ExpenseUserID,
			SplitType:          splitType,
			Amount:             amounts[i],
			BalanceOutstanding: outstanding,
			Status:             status,
			Settled:            outstanding.IsZero(),
		}
	}
	return results, nil
}

func splitAmounts(splitType string, balanceAmt decimal.Decimal, breakup []SplitInput) ([]decimal.Decimal, error) {
	switch splitType {
	case common.SplitTypeEqual:
		return equalAmounts(balanceAmt, len(breakup)), nil
	case common.SplitTypeExact:
		return exactAmounts(balanceAmt, breakup)
	case common.SplitTypePercentage:
		return percentageAmounts(balanceAmt, breakup)
	default:
		return nil, ErrMultipleSplitType
	}
}

func equalAmounts(balanceAmt decimal.Decimal, count int) []decimal.Decimal {
	n := decimal.NewFromInt(int64(count))
	share := round2(balanceAmt.Div(n))
	// the first participant absorbs the rounding remainder
	remainder := balanceAmt.Sub(share.Mul(n))

	amounts := make([]decimal.Decimal, count)
	for i := range amounts {
		amounts[i] = share
	}
	amounts[0] = round2(share.Add(remainder))
	return amounts
}

func exactAmounts(balanceAmt decimal.Decimal, breakup []SplitInput) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, len(breakup))
	total := decimal.Zero
	for i, row := range breakup {
		if row.SplitValue == nil {
			return nil, ErrMissingSplitValue
		}
		amounts[i] = round2(*row.SplitValue)
		total = total.Add(amounts[i])
	}
	if !total.Equal(balanceAmt) {
		return nil, ErrExactAmountMismatch
	}
	return amounts, nil
}

func percentageAmounts(balanceAmt decimal.Decimal, breakup []SplitInput) ([]decimal.Decimal, error) {
	totalPct := decimal.Zero
	for _, row := range breakup {
		if row.SplitValue == nil {
			return nil, ErrMissingSplitValue
		}
		totalPct = totalPct.Add(*row.SplitValue)
	}
	if !totalPct.Equal(hundred) {
		return nil, ErrPercentageSumMismatch
	}

	amounts := make([]decimal.Decimal, len(breakup))
	total := decimal.Zero
	for i, row := range breakup {
		amounts[i] = round2(row.SplitValue.Div(hundred).Mul(balanceAmt))
		total = total.Add(amounts[i])
	}
	// per-share rounding can drift the sum by a cent; the first participant
	// absorbs the difference, same as Equal splits
	drift := balanceAmt.Sub(total)
	if !drift.IsZero() {
		amounts[0] = round2(amounts[0].Add(drift))
	}
	return amounts, nil
}
