package service

import (
	"context"
	"sort"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var insightsTracer = otel.Tracer("service/insights")

const (
	spendingCacheKey = "insights:spending"
	monthlyCacheKey  = "insights:monthly"
)

// InsightsService derives spending analytics from the transaction snapshot.
// Both views depend only on the snapshot, never on the clock, so they sit
// behind the TTL cache.
type InsightsService struct {
	store   port.LedgerStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewInsightsService creates the insights service.
func NewInsightsService(store port.LedgerStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *InsightsService {
	return &InsightsService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// SpendingByCategory sums the magnitude of completed outflows per category,
// largest first. Pending transactions are excluded until they settle.
func (s *InsightsService) SpendingByCategory(ctx context.Context) ([]domain.CategorySpend, error) {
	ctx, span := insightsTracer.Start(ctx, "InsightsService.SpendingByCategory")
	defer span.End()

	if cached, ok := s.cache.Get(spendingCacheKey); ok {
		if spend, ok := cached.([]domain.CategorySpend); ok {
			s.metrics.IncrCacheHit("insights")
			return spend, nil
		}
	}
	s.metrics.IncrCacheMiss("insights")

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range transactions {
		if t.Status != domain.TransactionCompleted || !t.Amount.IsNegative() {
			continue
		}
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}

	spend := make([]domain.CategorySpend, 0, len(order))
	for _, category := range order {
		spend = append(spend, domain.CategorySpend{Category: category, Amount: totals[category]})
	}
	sort.SliceStable(spend, func(i, j int) bool {
		return spend[i].Amount.GreaterThan(spend[j].Amount)
	})

	s.cache.Set(spendingCacheKey, spend)
	return spend, nil
}

// MonthlyTrend buckets completed outflows by calendar month, oldest first.
func (s *InsightsService) MonthlyTrend(ctx context.Context) ([]domain.MonthlySpend, error) {
	ctx, span := insightsTracer.Start(ctx, "InsightsService.MonthlyTrend")
	defer span.End()

	if cached, ok := s.cache.Get(monthlyCacheKey); ok {
		if trend, ok := cached.([]domain.MonthlySpend); ok {
			s.metrics.IncrCacheHit("insights")
			return trend, nil
		}
	}
	s.metrics.IncrCacheMiss("insights")

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Status != domain.TransactionCompleted || !t.Amount.IsNegative() {
			continue
		}
		if len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7]
		totals[month] = totals[month].Add(t.Amount.Abs())
	}

	trend := make([]domain.MonthlySpend, 0, len(totals))
	for month, amount := range totals {
		trend = append(trend, domain.MonthlySpend{Month: month, Amount: amount})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Month < trend[j].Month
	})

	s.cache.Set(monthlyCacheKey, trend)
	return trend, nil
}
