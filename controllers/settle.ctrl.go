package controllers

import (
	"errors"
	"net/http"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/security"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// SettleController : Settle payment controller struct
type SettleController struct {
	svc *service.SplitxService
}

func NewSettleController(svc *service.SplitxService) *SettleController {
	return &SettleController{svc: svc}
}

type SettleRequestBody struct {
	PaymentID string `json:"payment_id" form:"payment_id" validate:"required"`
	Status    string `json:"status" form:"status" validate:"required,oneof=Settled Failed"`
	Mode      string `json:"mode" form:"mode"`
	Signature string `json:"signature" form:"signature" validate:"required"`
}

// Settle godoc
// @Summary      Resolve a pending payment
// @Description  Marks the settlement Settled or Failed and renders the outcome page
// @Accept       json
// @Produce      html
// @Tags         Settlement
// @Param        SettleRequest  body      SettleRequestBody  True  "Resolution to apply"
// @Success      200  {string}  string  "HTML page"
// @Failure      400  {string}  string  "HTML page"
// @Failure      404  {string}  string  "HTML page"
// @Router       /payments/settle [post]
func (controller *SettleController) Settle(c echo.Context) error {
	reqBody := SettleRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load settle request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid settle request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	existing, err := controller.svc.GetSettlementByPaymentID(c.Request().Context(), reqBody.PaymentID)
	if err != nil {
		return controller.renderInvalidLink(c)
	}
	split := existing.ExpenseSplit
	if !security.VerifyPaymentSignature(split.ExpenseUserID, split.ExpenseID, reqBody.PaymentID, reqBody.Signature, controller.svc.Config.PaymentLinkSecret) {
		c.Logger().Errorf("Signature mismatch on settle payment_id:%v", reqBody.PaymentID)
		return controller.renderInvalidLink(c)
	}

	mode := reqBody.Mode
	if mode == "" {
		mode = common.PaymentModeOffline
	}

	settlement, err := controller.svc.ResolveSettlement(c.Request().Context(), reqBody.PaymentID, reqBody.Status, mode)
	if err != nil {
		if errors.Is(err, service.ErrSettlementAlreadyResolved) {
			return c.Render(http.StatusBadRequest, "invalid-link.html", echo.Map{
				"Title":   controller.svc.Config.Branding.Title,
				"Message": responses.AlreadySettledError.Message,
			})
		}
		c.Logger().Errorf("Failed to resolve settlement payment_id:%v error: %v", reqBody.PaymentID, err)
		if resp := mapServiceError(err); resp != nil {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	if settlement.Status == common.SettlementStatusSettled {
		return c.Render(http.StatusOK, "payment-success.html", echo.Map{
			"Title":     controller.svc.Config.Branding.Title,
			"PaymentID": settlement.PaymentID,
			"Amount":    settlement.Amount.StringFixed(2),
		})
	}
	return c.Render(http.StatusOK, "payment-failed.html", echo.Map{
		"Title":     controller.svc.Config.Branding.Title,
		"PaymentID": settlement.PaymentID,
		"Amount":    settlement.Amount.StringFixed(2),
	})
}

func (controller *SettleController) renderInvalidLink(c echo.Context) error {
	return c.Render(http.StatusNotFound, "invalid-link.html", echo.Map{
		"Title":   controller.svc.Config.Branding.Title,
		"Message": responses.InvalidPaymentLinkError.Message,
	})
}
