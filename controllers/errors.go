package controllers

import (
	"errors"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
)

// mapServiceError translates the service layer's sentinel errors onto the
// wire-level responses. Unknown errors return nil so callers can fall back
// to a generic failure.
func mapServiceError(err error) *responses.ErrorResponse {
	switch {
	case errors.Is(err, service.ErrMultipleSplitType):
		return &responses.MultipleSplitTypeError
	case errors.Is(err, service.ErrExactAmountMismatch):
		return &responses.ExactAmountMismatchError
	case errors.Is(err, service.ErrPercentageSumMismatch):
		return &responses.PercentageSumMismatchError
	case errors.Is(err, service.ErrPayerMismatch):
		return &responses.PayerMismatchError
	case errors.Is(err, service.ErrMissingPayer):
		return &responses.MissingPayerError
	case errors.Is(err, service.ErrNoParticipants), errors.Is(err, service.ErrMissingSplitValue):
		return &responses.BadArgumentsError
	case errors.Is(err, service.ErrNotFriendOrMember):
		return &responses.NotFriendOrMemberError
	case errors.Is(err, service.ErrAmountExceedsOutstanding):
		return &responses.AmountExceedsOutstandingError
	case errors.Is(err, service.ErrExpenseNotFound):
		return &responses.ExpenseNotFoundError
	case errors.Is(err, service.ErrGroupNotFound):
		return &responses.GroupNotFoundError
	case errors.Is(err, service.ErrInvalidPaymentLink):
		return &responses.InvalidPaymentLinkError
	case errors.Is(err, service.ErrSettlementAlreadyResolved):
		return &responses.AlreadySettledError
	default:
		return nil
	}
}
