package controllers

import (
	"net/http"
	"strconv"

	"github.com/getsplitx/splitx.go/lib/responses"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

// GroupBalancesController : Group balances controller struct
type GroupBalancesController struct {
	svc *service.SplitxService
}

func NewGroupBalancesController(svc *service.SplitxService) *GroupBalancesController {
	return &GroupBalancesController{svc: svc}
}

type GroupBalancesResponseBody struct {
	GroupID  int64  `json:"group_id"`
	UserID   int64  `json:"user_id"`
	Owed     string `json:"owed"`
	Borrowed string `json:"borrowed"`
}

// GetBalances godoc
// @Summary      Retrieve group balances
// @Description  Returns how much the user is owed and owes within a group
// @Accept       json
// @Produce      json
// @Tags         Group
// @Param        id       path      int  true  "Group ID"
// @Param        user_id  query     int  true  "User ID"
// @Success      200      {object}  GroupBalancesResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /groups/{id}/balances [get]
func (controller *GroupBalancesController) GetBalances(c echo.Context) error {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	userID, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	owed, borrowed, err := controller.svc.GroupBalances(c.Request().Context(), groupID, userID)
	if err != nil {
		if resp := mapServiceError(err); resp != nil {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		c.Logger().Errorf("Failed to compute group balances group_id:%v user_id:%v error: %v", groupID, userID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &GroupBalancesResponseBody{
		GroupID:  groupID,
		UserID:   userID,
		Owed:     owed.StringFixed(2),
		Borrowed: borrowed.StringFixed(2),
	})
}
