package controllers

import (
	"net/http"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/security"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// PaymentSummaryController : Payment summary controller struct
type PaymentSummaryController struct {
	svc *service.SplitxService
}

func NewPaymentSummaryController(svc *service.SplitxService) *PaymentSummaryController {
	return &PaymentSummaryController{svc: svc}
}

// GetPaymentSummary godoc
// @Summary      Render the payment summary page
// @Description  Shows the settlement behind a signed payment link
// @Produce      html
// @Tags         Settlement
// @Param        payment_uid  path   string  true  "Payment token"
// @Param        signature    query  string  true  "Link signature"
// @Success      200  {string}  string  "HTML page"
// @Failure      404  {string}  string  "HTML page"
// @Router       /payment-summary/{payment_uid} [get]
func (controller *PaymentSummaryController) GetPaymentSummary(c echo.Context) error {
	paymentUID := c.Param("payment_uid")
	signature := c.QueryParam("signature")

	settlement, err := controller.svc.GetSettlementByPaymentID(c.Request().Context(), paymentUID)
	if err != nil {
		// Deliberately vague: an attacker probing tokens learns nothing about
		// which part of the link was wrong.
		return c.Render(http.StatusNotFound, "invalid-link.html", echo.Map{
			"Title":   controller.svc.Config.Branding.Title,
			"Message": responses.InvalidPaymentLinkError.Message,
		})
	}

	split := settlement.ExpenseSplit
	if !security.VerifyPaymentSignature(split.ExpenseUserID, split.ExpenseID, paymentUID, signature, controller.svc.Config.PaymentLinkSecret) {
		c.Logger().Errorf("Signature mismatch on payment link payment_id:%v", paymentUID)
		return c.Render(http.StatusNotFound, "invalid-link.html", echo.Map{
			"Title":   controller.svc.Config.Branding.Title,
			"Message": responses.InvalidPaymentLinkError.Message,
		})
	}

	switch settlement.Status {
	case common.SettlementStatusSettled:
		return c.Render(http.StatusBadRequest, "invalid-link.html", echo.Map{
			"Title":   controller.svc.Config.Branding.Title,
			"Message": responses.AlreadySettledError.Message,
		})
	case common.SettlementStatusFailed:
		return c.Render(http.StatusNotFound, "invalid-link.html", echo.Map{
			"Title":   controller.svc.Config.Branding.Title,
			"Message": responses.InvalidPaymentLinkError.Message,
		})
	}

	return c.Render(http.StatusOK, "payment-summary.html", echo.Map{
		"Title":       controller.svc.Config.Branding.Title,
		"PaymentID":   settlement.PaymentID,
		"ExpenseName": split.Expense.Name,
		"Amount":      settlement.Amount.StringFixed(2),
		"Status":      settlement.Status,
	})
}
