package controllers

import (
	"net/http"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AddExpenseController : Add expense controller struct
type AddExpenseController struct {
	svc *service.SplitxService
}

func NewAddExpenseController(svc *service.SplitxService) *AddExpenseController {
	return &AddExpenseController{svc: svc}
}

type SplitBreakupRow struct {
	ExpenseUser int64            `json:"expense_user" validate:"required"`
	SplitType   string           `json:"split_type" validate:"required,oneof=Equal Exact Percentage"`
	SplitValue  *decimal.Decimal `json:"split_value"`
	Status      string           `json:"status" validate:"omitempty,oneof=Paid Pending"`
}

type AddExpenseRequestBody struct {
	Name         string            `json:"name" validate:"required"`
	BalanceAmt   decimal.Decimal   `json:"balance_amt" validate:"required"`
	ExpenseBy    int64             `json:"expense_by" validate:"required"`
	GroupID      int64             `json:"group_id"`
	SplitBreakup []SplitBreakupRow `json:"split_breakup" validate:"required,min=1,dive"`
}

type AddExpenseResponseBody struct {
	ID         int64                 `json:"id"`
	Name       string                `json:"name"`
	BalanceAmt string                `json:"balance_amt"`
	ExpenseBy  int64                 `json:"expense_by"`
	GroupID    int64                 `json:"group_id,omitempty"`
	Status     string                `json:"status"`
	Splits     []service.SplitDetail `json:"splits"`
}

// AddExpense godoc
// @Summary      Create an expense
// @Description  Record an expense together with its split breakup in one shot
// @Accept       json
// @Produce      json
// @Tags         Expense
// @Param        AddExpenseRequest  body      AddExpenseRequestBody  True  "Expense to create"
// @Success      201                {object}  AddExpenseResponseBody
// @Failure      400                {object}  responses.ErrorResponse
// @Failure      406                {object}  responses.ErrorResponse
// @Failure      500                {object}  responses.ErrorResponse
// @Router       /expenses [post]
func (controller *AddExpenseController) AddExpense(c echo.Context) error {
	reqBody := AddExpenseRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load add expense request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid add expense request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if reqBody.BalanceAmt.Sign() <= 0 {
		c.Logger().Errorf("Rejected non-positive expense amount: %s", reqBody.BalanceAmt)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	input := service.CreateExpenseInput{
		Name:        reqBody.Name,
		BalanceAmt:  reqBody.BalanceAmt,
		ExpenseByID: reqBody.ExpenseBy,
		GroupID:     reqBody.GroupID,
	}
	for _, row := range reqBody.SplitBreakup {
		input.SplitBreakup = append(input.SplitBreakup, service.SplitInput{
			ExpenseUserID: row.ExpenseUser,
			SplitType:     row.SplitType,
			SplitValue:    row.SplitValue,
			Status:        row.Status,
		})
	}

	expense, err := controller.svc.CreateExpense(c.Request().Context(), input)
	if err != nil {
		c.Logger().Errorf("Failed to create expense expense_by:%v error: %v", reqBody.ExpenseBy, err)
		if resp := mapServiceError(err); resp != nil {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	splits, err := controller.svc.SplitBreakdown(c.Request().Context(), expense.ID)
	if err != nil {
		c.Logger().Errorf("Failed to load split breakdown expense_id:%v error: %v", expense.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusCreated, &AddExpenseResponseBody{
		ID:         expense.ID,
		Name:       expense.Name,
		BalanceAmt: expense.BalanceAmt.StringFixed(2),
		ExpenseBy:  expense.ExpenseByID,
		GroupID:    expense.GroupID,
		Status:     expense.Status,
		Splits:     splits,
	})
}
