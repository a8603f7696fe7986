package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var MultipleSplitTypeError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "Please select only one split type.",
	HttpStatusCode: 400,
}

var ExactAmountMismatchError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "Sum of split values must be equal to balance amount for exact amount split type.",
	HttpStatusCode: 400,
}

var PercentageSumMismatchError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "Sum of split values must be 100 for percentage split type.",
	HttpStatusCode: 400,
}

var PayerMismatchError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "The user who made the expense must have paid.",
	HttpStatusCode: 400,
}

var MissingPayerError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "At least one user must have paid.",
	HttpStatusCode: 400,
}

var NotFriendOrMemberError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "All participants must be friends of the payer or members of the group.",
	HttpStatusCode: 400,
}

var AmountExceedsOutstandingError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "Amount is more than outstanding expense amount",
	HttpStatusCode: 406,
}

var ExpenseNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "Expense not found.",
	HttpStatusCode: 404,
}

var GroupNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "Group data not Found",
	HttpStatusCode: 404,
}

// InvalidPaymentLinkError is deliberately generic: bad signature, unknown
// token and failed settlement all produce the same message so the endpoint
// does not act as an oracle.
var InvalidPaymentLinkError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "The link you clicked is either invalid or has expired. Please request a new one.",
	HttpStatusCode: 404,
}

var AlreadySettledError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "Expense has already been settled",
	HttpStatusCode: 400,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
