package transport

import (
	"github.com/getsplitx/splitx.go/controllers"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.SplitxService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	expenseDetailCtrl := controllers.NewExpenseDetailController(svc)
	settlementsCtrl := controllers.NewExpenseSettlementsController(svc)

	e.POST("/expenses", controllers.NewAddExpenseController(svc).AddExpense, logMw)
	e.GET("/expenses/:id", expenseDetailCtrl.GetExpense, logMw)
	e.GET("/expenses/:id/settlements", settlementsCtrl.GetSettlements, logMw)
	e.GET("/groups/:id/balances", controllers.NewGroupBalancesController(svc).GetBalances, logMw)

	// Settlement resolution mutates balances, so it sits behind the strict
	// limiter the same way money-moving endpoints usually do.
	e.POST("/payments/link", controllers.NewPaymentLinkController(svc).CreatePaymentLink, strictRateLimitMiddleware, logMw)
	e.POST("/payments/settle", controllers.NewSettleController(svc).Settle, strictRateLimitMiddleware, logMw)
	e.GET("/payment-summary/:payment_uid", controllers.NewPaymentSummaryController(svc).GetPaymentSummary, logMw)

	e.POST("/reminders/notify", controllers.NewReminderController(svc).Notify, strictRateLimitMiddleware, logMw)
	e.GET("/health", controllers.NewHealthController().Check)
}
