package service

import (
	"context"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var overviewTracer = otel.Tracer("service/overview")

// OverviewService assembles the dashboard landing payload from the other
// services. The four sections are independent reads over the same
// snapshot, so they run concurrently.
type OverviewService struct {
	accounts *AccountsService
	ledger   *LedgerService
	bills    *BillsService
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewOverviewService creates the overview service.
func NewOverviewService(accounts *AccountsService, ledger *LedgerService, bills *BillsService, metrics *observability.Metrics, logger *zap.Logger) *OverviewService {
	return &OverviewService{
		accounts: accounts,
		ledger:   ledger,
		bills:    bills,
		metrics:  metrics,
		logger:   logger,
	}
}

// Get builds the overview for the given clock.
func (s *OverviewService) Get(ctx context.Context, now time.Time) (*domain.Overview, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := overviewTracer.Start(ctx, "OverviewService.Get")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("overview", time.Since(start)) }()

	var (
		accounts *domain.AccountsSummary
		recent   []domain.Transaction
		month    *domain.MonthSummary
		bills    *domain.BillsSummary
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := s.accounts.Summary(gCtx)
		if err != nil {
			s.logger.Error("overview: accounts summary failed", zap.Error(err))
			return err
		}
		accounts = a
		return nil
	})

	g.Go(func() error {
		r, err := s.ledger.Recent(gCtx)
		if err != nil {
			s.logger.Error("overview: recent transactions failed", zap.Error(err))
			return err
		}
		recent = r
		return nil
	})

	g.Go(func() error {
		m, err := s.ledger.MonthSummary(gCtx, now)
		if err != nil {
			s.logger.Error("overview: month summary failed", zap.Error(err))
			return err
		}
		month = m
		return nil
	})

	g.Go(func() error {
		b, err := s.bills.Summary(gCtx)
		if err != nil {
			s.logger.Error("overview: bills summary failed", zap.Error(err))
			return err
		}
		bills = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Overview{
		Accounts:     accounts.Accounts,
		TotalBalance: accounts.TotalBalance,
		Recent:       recent,
		MonthSummary: *month,
		BillsDue:     bills.TotalDue,
	}, nil
}
