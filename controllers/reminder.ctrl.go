package controllers

import (
	"errors"
	"net/http"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ReminderController : Debt reminder controller struct
type ReminderController struct {
	svc *service.SplitxService
}

func NewReminderController(svc *service.SplitxService) *ReminderController {
	return &ReminderController{svc: svc}
}

type ReminderRequestBody struct {
	LenderID   int64 `json:"lender_id" validate:"required"`
	BorrowerID int64 `json:"borrower_id" validate:"required"`
}

type ReminderResponseBody struct {
	Result string `json:"result"`
}

// Notify godoc
// @Summary      Send a debt reminder
// @Description  Queues a reminder mail from the lender to the borrower
// @Accept       json
// @Produce      json
// @Tags         Reminder
// @Param        ReminderRequest  body      ReminderRequestBody  True  "Who reminds whom"
// @Success      200              {object}  ReminderResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /reminders/notify [post]
func (controller *ReminderController) Notify(c echo.Context) error {
	reqBody := ReminderRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load reminder request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid reminder request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err := controller.svc.NotifyUserAboutDebit(c.Request().Context(), reqBody.LenderID, reqBody.BorrowerID)
	if err != nil {
		if errors.Is(err, service.ErrNothingOutstanding) {
			return c.JSON(http.StatusOK, &ReminderResponseBody{Result: "nothing outstanding"})
		}
		c.Logger().Errorf("Failed to queue reminder lender_id:%v borrower_id:%v error: %v", reqBody.LenderID, reqBody.BorrowerID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, &ReminderResponseBody{Result: "reminder queued"})
}
