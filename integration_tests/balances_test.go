package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsplitx/splitx.go/common"
	"github.com/getsplitx/splitx.go/controllers"
	"github.com/getsplitx/splitx.go/db/models"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BalancesTestSuite struct {
	TestSuite
	service *service.SplitxService
	users   []models.User
	group   *models.Group
}

func (suite *BalancesTestSuite) SetupSuite() {
	svc, err := SplitxTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho()
	suite.echo.GET("/groups/:id/balances", controllers.NewGroupBalancesController(svc).GetBalances)
	suite.echo.POST("/reminders/notify", controllers.NewReminderController(svc).Notify)
}

func (suite *BalancesTestSuite) SetupTest() {
	users, err := createUsers(suite.service, 3)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), befriend(suite.service, users))
	group, err := createGroup(suite.service, "Flat", users)
	assert.NoError(suite.T(), err)
	suite.users = users
	suite.group = group
}

func (suite *BalancesTestSuite) TearDownTest() {
	assert.NoError(suite.T(), clearLedgerTables(suite.service))
}

func (suite *BalancesTestSuite) getBalances(groupID, userID int64) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/groups/"+itoa(groupID)+"/balances?user_id="+itoa(userID), nil)
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *BalancesTestSuite) TestEmptyGroupBalances() {
	rec := suite.getBalances(suite.group.ID, suite.users[0].ID)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	response := &controllers.GroupBalancesResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "0.00", response.Owed)
	assert.Equal(suite.T(), "0.00", response.Borrowed)
}

func (suite *BalancesTestSuite) TestGroupBalancesAfterExpense() {
	_, err := suite.service.CreateExpense(context.Background(), service.CreateExpenseInput{
		Name:        "Rent",
		BalanceAmt:  decimal.NewFromInt(90),
		ExpenseByID: suite.users[0].ID,
		GroupID:     suite.group.ID,
		SplitBreakup: []service.SplitInput{
			{ExpenseUserID: suite.users[0].ID, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
			{ExpenseUserID: suite.users[1].ID, SplitType: common.SplitTypeEqual},
			{ExpenseUserID: suite.users[2].ID, SplitType: common.SplitTypeEqual},
		},
	})
	assert.NoError(suite.T(), err)

	// the payer is owed the other two shares and owes nothing
	rec := suite.getBalances(suite.group.ID, suite.users[0].ID)
	response := &controllers.GroupBalancesResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "60.00", response.Owed)
	assert.Equal(suite.T(), "0.00", response.Borrowed)

	// a borrower owes their share and is owed nothing
	rec = suite.getBalances(suite.group.ID, suite.users[1].ID)
	response = &controllers.GroupBalancesResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "0.00", response.Owed)
	assert.Equal(suite.T(), "30.00", response.Borrowed)
}

func (suite *BalancesTestSuite) TestUnknownGroup() {
	rec := suite.getBalances(999999, suite.users[0].ID)
	checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
}

func (suite *BalancesTestSuite) TestDebtReminder() {
	_, err := suite.service.CreateExpense(context.Background(), service.CreateExpenseInput{
		Name:        "Cab",
		BalanceAmt:  decimal.NewFromInt(40),
		ExpenseByID: suite.users[0].ID,
		SplitBreakup: []service.SplitInput{
			{ExpenseUserID: suite.users[0].ID, SplitType: common.SplitTypeEqual, Status: common.SplitStatusPaid},
			{ExpenseUserID: suite.users[1].ID, SplitType: common.SplitTypeEqual},
		},
	})
	assert.NoError(suite.T(), err)

	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(echo.Map{
		"lender_id":   suite.users[0].ID,
		"borrower_id": suite.users[1].ID,
	}))
	req := httptest.NewRequest(http.MethodPost, "/reminders/notify", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	response := &controllers.ReminderResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "reminder queued", response.Result)
}

func (suite *BalancesTestSuite) TestReminderWithNothingOutstanding() {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(echo.Map{
		"lender_id":   suite.users[0].ID,
		"borrower_id": suite.users[1].ID,
	}))
	req := httptest.NewRequest(http.MethodPost, "/reminders/notify", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	response := &controllers.ReminderResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "nothing outstanding", response.Result)
}

func TestBalancesSuite(t *testing.T) {
	suite.Run(t, new(BalancesTestSuite))
}
