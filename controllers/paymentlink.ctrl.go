package controllers

import (
	"net/http"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PaymentLinkController : Payment link controller struct
type PaymentLinkController struct {
	svc *service.SplitxService
}

func NewPaymentLinkController(svc *service.SplitxService) *PaymentLinkController {
	return &PaymentLinkController{svc: svc}
}

type PaymentLinkRequestBody struct {
	ExpenseID int64           `json:"expense_id" validate:"required"`
	UserID    int64           `json:"user_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

type PaymentLinkResponseBody struct {
	PaymentID   string `json:"payment_id"`
	PaymentLink string `json:"payment_link"`
	Amount      string `json:"amount"`
}

// CreatePaymentLink godoc
// @Summary      Create a payment link
// @Description  Opens a pending settlement and returns a signed payment URL
// @Accept       json
// @Produce      json
// @Tags         Settlement
// @Param        PaymentLinkRequest  body      PaymentLinkRequestBody  True  "Settlement to open"
// @Success      200                 {object}  PaymentLinkResponseBody
// @Failure      400                 {object}  responses.ErrorResponse
// @Failure      406                 {object}  responses.ErrorResponse
// @Failure      500                 {object}  responses.ErrorResponse
// @Router       /payments/link [post]
func (controller *PaymentLinkController) CreatePaymentLink(c echo.Context) error {
	reqBody := PaymentLinkRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load payment link request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid payment link request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if reqBody.Amount.Sign() <= 0 {
		c.Logger().Errorf("Rejected non-positive settlement amount: %s", reqBody.Amount)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	settlement, err := controller.svc.CreatePendingSettlement(c.Request().Context(), reqBody.ExpenseID, reqBody.UserID, reqBody.Amount)
	if err != nil {
		c.Logger().Errorf("Failed to open settlement expense_id:%v user_id:%v error: %v", reqBody.ExpenseID, reqBody.UserID, err)
		if resp := mapServiceError(err); resp != nil {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	link := controller.svc.GeneratePaymentLink(reqBody.UserID, reqBody.ExpenseID, settlement.PaymentID)
	return c.JSON(http.StatusOK, &PaymentLinkResponseBody{
		PaymentID:   settlement.PaymentID,
		PaymentLink: link,
		Amount:      settlement.Amount.StringFixed(2),
	})
}
