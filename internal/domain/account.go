package domain

import "github.com/shopspring/decimal"

// Account types.
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
	AccountTypeCredit   = "credit"
)

// Account represents a single account in the ledger snapshot.
// The snapshot is fixed at process start; balances are never written back.
// The transfer workflow only derives a projected balance for display.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"` // checking, savings, credit
	Balance  decimal.Decimal `json:"balance"`
	LastFour string          `json:"lastFour"`
	Icon     string          `json:"icon,omitempty"`
}

// AccountsSummary is returned by GET /v1/accounts.
type AccountsSummary struct {
	Accounts     []Account       `json:"accounts"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// TransferCandidates lists which accounts may act as source and destination
// of a transfer. Sources must hold a positive balance; destinations exclude
// the selected source.
type TransferCandidates struct {
	From []Account `json:"from"`
	To   []Account `json:"to"`
}
