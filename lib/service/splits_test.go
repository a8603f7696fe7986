package service

import (
	"testing"

	"github.com/getsplitx/splitx.go/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestEqualSplitWithRemainder(t *testing.T) {
	results, err := ComputeSplits(dec("100"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeEqual},
		{ExpenseUserID: 3, SplitType: common.SplitTypeEqual},
	})
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	// 100/3 rounds to 33.33, the first participant picks up the extra cent
	assert.Equal(t, "33.34", results[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", results[1].Amount.StringFixed(2))
	assert.Equal(t, "33.33", results[2].Amount.StringFixed(2))

	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.Amount)
	}
	assert.True(t, total.Equal(dec("100")))
}

func TestEqualSplitPayerOwesNothing(t *testing.T) {
	results, err := ComputeSplits(dec("90"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeEqual},
		{ExpenseUserID: 3, SplitType: common.SplitTypeEqual},
	})
	assert.NoError(t, err)
	assert.True(t, results[0].BalanceOutstanding.IsZero())
	assert.True(t, results[0].Settled)
	assert.Equal(t, common.SplitStatusPaid, results[0].Status)
	assert.Equal(t, "30.00", results[1].BalanceOutstanding.StringFixed(2))
	assert.False(t, results[1].Settled)
	assert.Equal(t, common.SplitStatusPending, results[1].Status)
}

func TestExactSplit(t *testing.T) {
	results, err := ComputeSplits(dec("250"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeExact, SplitValue: decPtr("150"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeExact, SplitValue: decPtr("100")},
	})
	assert.NoError(t, err)
	assert.Equal(t, "150.00", results[0].Amount.StringFixed(2))
	assert.Equal(t, "100.00", results[1].Amount.StringFixed(2))
}

func TestExactSplitMismatch(t *testing.T) {
	_, err := ComputeSplits(dec("100.00"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeExact, SplitValue: decPtr("50.00"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeExact, SplitValue: decPtr("49.99")},
	})
	assert.ErrorIs(t, err, ErrExactAmountMismatch)
}

func TestPercentageSplit(t *testing.T) {
	results, err := ComputeSplits(dec("250"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypePercentage, SplitValue: decPtr("60"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypePercentage, SplitValue: decPtr("40")},
	})
	assert.NoError(t, err)
	assert.Equal(t, "150.00", results[0].Amount.StringFixed(2))
	assert.Equal(t, "100.00", results[1].Amount.StringFixed(2))
}

func TestPercentageSplitRoundingDrift(t *testing.T) {
	results, err := ComputeSplits(dec("100"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypePercentage, SplitValue: decPtr("33.33"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypePercentage, SplitValue: decPtr("33.33")},
		{ExpenseUserID: 3, SplitType: common.SplitTypePercentage, SplitValue: decPtr("33.34")},
	})
	assert.NoError(t, err)
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.Amount)
	}
	assert.True(t, total.Equal(dec("100")))
}

func TestPercentageSumMismatch(t *testing.T) {
	_, err := ComputeSplits(dec("250"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypePercentage, SplitValue: decPtr("60"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypePercentage, SplitValue: decPtr("30")},
	})
	assert.ErrorIs(t, err, ErrPercentageSumMismatch)
}

func TestMultipleSplitTypesRejected(t *testing.T) {
	_, err := ComputeSplits(dec("100"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeExact, SplitValue: decPtr("50")},
	})
	assert.ErrorIs(t, err, ErrMultipleSplitType)
}

func TestMissingPayerRejected(t *testing.T) {
	_, err := ComputeSplits(dec("100"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeEqual},
		{ExpenseUserID: 2, SplitType: common.SplitTypeEqual},
	})
	assert.ErrorIs(t, err, ErrMissingPayer)
}

func TestPayerMismatchRejected(t *testing.T) {
	// user 3 recorded the expense but only user 1 is marked Paid
	_, err := ComputeSplits(dec("100"), 3, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeEqual},
		{ExpenseUserID: 3, SplitType: common.SplitTypeEqual},
	})
	assert.ErrorIs(t, err, ErrPayerMismatch)
}

func TestEmptyBreakupRejected(t *testing.T) {
	_, err := ComputeSplits(dec("100"), 1, []SplitInput{})
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestMissingSplitValueRejected(t *testing.T) {
	_, err := ComputeSplits(dec("100"), 1, []SplitInput{
		{ExpenseUserID: 1, SplitType: common.SplitTypeExact, SplitValue: decPtr("100"), Status: common.SplitStatusPaid},
		{ExpenseUserID: 2, SplitType: common.SplitTypeExact},
	})
	assert.ErrorIs(t, err, ErrMissingSplitValue)
}

func TestHalfUpRounding(t *testing.T) {
	assert.Equal(t, "33.34", round2(dec("33.335")).StringFixed(2))
	assert.Equal(t, "33.33", round2(dec("33.334")).StringFixed(2))
}
