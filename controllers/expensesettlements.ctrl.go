package controllers

import (
	"net/http"
	"strconv"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ExpenseSettlementsController : Expense settlements controller struct
type ExpenseSettlementsController struct {
	svc *service.SplitxService
}

func NewExpenseSettlementsController(svc *service.SplitxService) *ExpenseSettlementsController {
	return &ExpenseSettlementsController{svc: svc}
}

type SettlementResponse struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	IsOffline bool   `json:"is_offline"`
	CreatedOn string `json:"created_on"`
}

type GetSettlementsResponseBody struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// GetSettlements godoc
// @Summary      Retrieve settlements for an expense
// @Description  Returns the user's settled payments against an expense
// @Accept       json
// @Produce      json
// @Tags         Settlement
// @Param        id       path      int  true  "Expense ID"
// @Param        user_id  query     int  true  "User ID"
// @Success      200      {object}  GetSettlementsResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /expenses/{id}/settlements [get]
func (controller *ExpenseSettlementsController) GetSettlements(c echo.Context) error {
	expenseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	userID, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	settlements, err := controller.svc.UserSettlementsForExpense(c.Request().Context(), userID, expenseID)
	if err != nil {
		c.Logger().Errorf("Failed to load settlements expense_id:%v user_id:%v error: %v", expenseID, userID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]SettlementResponse, len(settlements))
	for i, settlement := range settlements {
		response[i] = SettlementResponse{
			PaymentID: settlement.PaymentID,
			Amount:    settlement.Amount.StringFixed(2),
			Status:    settlement.Status,
			IsOffline: settlement.IsOffline,
			CreatedOn: settlement.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return c.JSON(http.StatusOK, &GetSettlementsResponseBody{Settlements: response})
}
