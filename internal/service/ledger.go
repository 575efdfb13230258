// Package service provides the business logic layer (use cases):
// ledger queries, the transfer workflow, accounts, bills and insights.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var ledgerTracer = otel.Tracer("service/ledger")

// Sort keys accepted by Query.
const (
	SortDateDesc   = "date-desc"
	SortDateAsc    = "date-asc"
	SortAmountDesc = "amount-desc"
	SortAmountAsc  = "amount-asc"
)

// FilterAll disables an account or category filter. The frontend sends it
// explicitly; an empty value means the same thing.
const FilterAll = "all"

// recentCount is the size of the recent-transactions view.
const recentCount = 5

// LedgerQuery carries the filter and sort parameters of one transaction
// query. The zero value is a no-op query returning the snapshot in source
// order.
type LedgerQuery struct {
	Search   string
	Account  string
	Category string
	Sort     string
	Limit    int // 0 means no limit
}

// LedgerService projects the transaction snapshot into filtered, ordered
// views. All operations are pure over the store data: they never mutate
// the snapshot and build a fresh result slice per call.
type LedgerService struct {
	store   port.LedgerStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLedgerService creates the ledger query service.
func NewLedgerService(store port.LedgerStore, metrics *observability.Metrics, logger *zap.Logger) *LedgerService {
	return &LedgerService{store: store, metrics: metrics, logger: logger}
}

// Query returns the transactions matching every active filter, ordered by
// the requested sort key. Filters are conjunctive. An empty result is a
// valid outcome, reported with the pre-limit match count so callers can
// render it as "no matches" rather than "no data".
func (s *LedgerService) Query(ctx context.Context, q LedgerQuery) (*domain.TransactionPage, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Query")
	defer span.End()
	span.SetAttributes(
		attribute.String("ledger.sort", q.Sort),
		attribute.String("ledger.account", q.Account),
		attribute.String("ledger.category", q.Category),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("ledger_query", time.Since(start)) }()

	if err := validateSort(q.Sort); err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	matched := filterTransactions(transactions, q)
	sortTransactions(matched, q.Sort)

	total := len(matched)
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	s.metrics.IncrLedgerQuery(q.Sort)
	return &domain.TransactionPage{Transactions: matched, Total: total}, nil
}

// Categories returns the distinct category values present in the snapshot,
// in first-seen order. It is derived from the transaction collection on
// every call so it can never go stale against it.
func (s *LedgerService) Categories(ctx context.Context) ([]string, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Categories")
	defer span.End()

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(transactions))
	categories := make([]string, 0, len(transactions))
	for _, t := range transactions {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		categories = append(categories, t.Category)
	}
	return categories, nil
}

// Recent returns the first transactions of the snapshot in source order.
// The snapshot is kept date-descending, so this is the newest activity.
func (s *LedgerService) Recent(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.Recent")
	defer span.End()

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	if len(transactions) > recentCount {
		transactions = transactions[:recentCount]
	}
	return transactions, nil
}

// MonthSummary sums income and spending for the calendar month containing
// now. The clock is caller-supplied, keeping the result reproducible in
// tests; handlers pass time.Now(). The summary is recomputed on every call
// so it cannot survive a month boundary.
func (s *LedgerService) MonthSummary(ctx context.Context, now time.Time) (*domain.MonthSummary, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.MonthSummary")
	defer span.End()

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	year, month, _ := now.Date()
	income := decimal.Zero
	spending := decimal.Zero

	for _, t := range transactions {
		day, ok := t.Day()
		if !ok {
			continue
		}
		if day.Year() != year || day.Month() != month {
			continue
		}
		if t.Amount.IsPositive() {
			income = income.Add(t.Amount)
		} else {
			spending = spending.Add(t.Amount.Abs())
		}
	}

	return &domain.MonthSummary{
		Month:    now.Format("2006-01"),
		Income:   income,
		Spending: spending,
	}, nil
}

func validateSort(key string) error {
	switch key {
	case "", SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return nil
	default:
		return &domain.ErrValidation{Field: "sort", Message: "unknown sort key '" + key + "'"}
	}
}

func filterTransactions(transactions []domain.Transaction, q LedgerQuery) []domain.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	account := q.Account
	category := q.Category

	out := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if account != "" && account != FilterAll && t.AccountID != account {
			continue
		}
		if category != "" && category != FilterAll && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	return out
}

// sortTransactions orders in place. Amount keys compare magnitude, not the
// signed value: a 500.00 debit outranks a 100.00 credit under amount-desc.
// Date strings are ISO formatted, so plain string comparison is calendar
// order. Ties keep input order.
func sortTransactions(transactions []domain.Transaction, key string) {
	switch key {
	case SortDateDesc:
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Date > transactions[j].Date
		})
	case SortDateAsc:
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Date < transactions[j].Date
		})
	case SortAmountDesc:
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Amount.Abs().GreaterThan(transactions[j].Amount.Abs())
		})
	case SortAmountAsc:
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Amount.Abs().LessThan(transactions[j].Amount.Abs())
		})
	}
}
