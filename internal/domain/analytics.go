package domain

import "github.com/shopspring/decimal"

// CategorySpend is one slice of the spending-by-category breakdown.
// Amount is the absolute sum of completed outflows in the category.
type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlySpend is one point of the monthly spending trend.
type MonthlySpend struct {
	Month  string          `json:"month"` // YYYY-MM
	Amount decimal.Decimal `json:"amount"`
}

// MonthSummary aggregates the current calendar month. Income sums positive
// amounts, Spending sums the magnitude of negative amounts. It is evaluated
// against a caller-supplied clock and never cached across a month boundary.
type MonthSummary struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
}

// Overview is the aggregate payload behind the dashboard landing view.
type Overview struct {
	Accounts     []Account       `json:"accounts"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Recent       []Transaction   `json:"recent"`
	MonthSummary MonthSummary    `json:"monthSummary"`
	BillsDue     decimal.Decimal `json:"billsDue"`
}

// UsageMetrics is returned by GET /v1/metrics/usage.
type UsageMetrics struct {
	Requests          int64   `json:"requests"`
	ErrorRate         float64 `json:"errorRate"`
	LedgerQueries     int64   `json:"ledgerQueries"`
	TransferSubmits   int64   `json:"transferSubmits"`
	TransferConfirmed int64   `json:"transferConfirmed"`
	TransferRejected  int64   `json:"transferRejected"`
	CacheHitRate      float64 `json:"cacheHitRate"`
	Period            string  `json:"period"`
}
