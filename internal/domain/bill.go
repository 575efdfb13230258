package domain

import "github.com/shopspring/decimal"

// Bill statuses.
const (
	BillPaid    = "paid"
	BillDue     = "due"
	BillOverdue = "overdue"
)

// Bill is a recurring obligation tracked alongside the ledger.
type Bill struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"dueDate"` // YYYY-MM-DD
	Status   string          `json:"status"`  // paid, due, overdue
	Category string          `json:"category"`
}

// Outstanding reports whether the bill still needs payment.
func (b Bill) Outstanding() bool {
	return b.Status == BillDue || b.Status == BillOverdue
}

// BillsSummary is returned by GET /v1/bills/summary.
type BillsSummary struct {
	Due      []Bill          `json:"due"`
	Paid     []Bill          `json:"paid"`
	TotalDue decimal.Decimal `json:"totalDue"`
}
