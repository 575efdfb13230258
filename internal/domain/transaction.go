package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used throughout the ledger.
// Dates carry no time component; lexicographic order equals calendar order.
const DateLayout = "2006-01-02"

// Transaction statuses.
const (
	TransactionCompleted = "completed"
	TransactionPending   = "pending"
)

// Transaction is a single ledger entry. Amounts are signed: positive for
// inflows, negative for outflows. The category set is open, derived from
// the data rather than enumerated.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Status      string          `json:"status"` // completed, pending
	AccountID   string          `json:"accountId"`
}

// Day parses the transaction date. A malformed date returns the zero time
// and false; callers treat such rows as outside any calendar window.
func (t Transaction) Day() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// TransactionPage is returned by GET /v1/transactions. Total counts the
// matches before any limit is applied so callers can tell an empty filter
// result apart from an unloaded snapshot.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}
