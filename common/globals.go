package common

const (
	ExpenseStatusPending = "Pending"
	ExpenseStatusPaid    = "Paid"

	SplitTypeEqual      = "Equal"
	SplitTypeExact      = "Exact"
	SplitTypePercentage = "Percentage"

	SplitStatusPending = "Pending"
	SplitStatusPaid    = "Paid"

	SettlementStatusPending = "Pending"
	SettlementStatusSettled = "Settled"
	SettlementStatusFailed  = "Failed"

	PaymentModeOffline = "Offline"

	TaskExpenseStatusUpdate = "expense_status_update"
	TaskNotificationEmail   = "notification_email"

	EventDebtCreated     = "debt_created"
	EventDebtReminded    = "debt_reminded"
	EventExpenseSettled  = "expense_settled"
	EventSettlementAdded = "settlement_added"
)

// PaymentLinkPath is the path template of a signed settlement URL, relative
// to the configured base URL.
const PaymentLinkPath = "/payment-summary/%s?signature=%s"
