package controllers

import (
	"net/http"
	"strconv"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ExpenseDetailController : Expense detail controller struct
type ExpenseDetailController struct {
	svc *service.SplitxService
}

func NewExpenseDetailController(svc *service.SplitxService) *ExpenseDetailController {
	return &ExpenseDetailController{svc: svc}
}

type ExpenseDetailResponseBody struct {
	ID         int64                 `json:"id"`
	Name       string                `json:"name"`
	BalanceAmt string                `json:"balance_amt"`
	ExpenseBy  int64                 `json:"expense_by"`
	GroupID    int64                 `json:"group_id,omitempty"`
	Status     string                `json:"status"`
	Splits     []service.SplitDetail `json:"splits"`
}

// GetExpense godoc
// @Summary      Retrieve an expense
// @Description  Returns the expense with the per-participant split breakdown
// @Accept       json
// @Produce      json
// @Tags         Expense
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  ExpenseDetailResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /expenses/{id} [get]
func (controller *ExpenseDetailController) GetExpense(c echo.Context) error {
	expenseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	expense, err := controller.svc.FindExpense(c.Request().Context(), expenseID)
	if err != nil {
		if resp := mapServiceError(err); resp != nil {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		c.Logger().Errorf("Failed to load expense expense_id:%v error: %v", expenseID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	splits, err := controller.svc.SplitBreakdown(c.Request().Context(), expense.ID)
	if err != nil {
		c.Logger().Errorf("Failed to load split breakdown expense_id:%v error: %v", expense.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &ExpenseDetailResponseBody{
		ID:         expense.ID,
		Name:       expense.Name,
		BalanceAmt: expense.BalanceAmt.StringFixed(2),
		ExpenseBy:  expense.ExpenseByID,
		GroupID:    expense.GroupID,
		Status:     expense.Status,
		Splits:     splits,
	})
}
