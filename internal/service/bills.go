package service

import (
	"context"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var billsTracer = otel.Tracer("service/bills")

// BillsService serves the bill snapshot and the mark-as-paid mutation.
type BillsService struct {
	store   port.LedgerStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewBillsService creates the bills service.
func NewBillsService(store port.LedgerStore, metrics *observability.Metrics, logger *zap.Logger) *BillsService {
	return &BillsService{store: store, metrics: metrics, logger: logger}
}

// List returns every bill in snapshot order.
func (s *BillsService) List(ctx context.Context) ([]domain.Bill, error) {
	ctx, span := billsTracer.Start(ctx, "BillsService.List")
	defer span.End()

	return s.store.ListBills(ctx)
}

// Summary splits bills into outstanding and paid and totals the amount
// still due. Overdue bills count as outstanding.
func (s *BillsService) Summary(ctx context.Context) (*domain.BillsSummary, error) {
	ctx, span := billsTracer.Start(ctx, "BillsService.Summary")
	defer span.End()

	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.BillsSummary{
		Due:      make([]domain.Bill, 0, len(bills)),
		Paid:     make([]domain.Bill, 0, len(bills)),
		TotalDue: decimal.Zero,
	}
	for _, b := range bills {
		if b.Outstanding() {
			summary.Due = append(summary.Due, b)
			summary.TotalDue = summary.TotalDue.Add(b.Amount)
		} else {
			summary.Paid = append(summary.Paid, b)
		}
	}
	return summary, nil
}

// MarkPaid flips a bill to paid and returns the updated record. The change
// is process-local; nothing is persisted.
func (s *BillsService) MarkPaid(ctx context.Context, billID string) (*domain.Bill, error) {
	ctx, span := billsTracer.Start(ctx, "BillsService.MarkPaid")
	defer span.End()
	span.SetAttributes(attribute.String("bill.id", billID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("bill_pay", time.Since(start)) }()

	bill, err := s.store.MarkBillPaid(ctx, billID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bill paid",
		zap.String("bill_id", bill.ID),
		zap.String("amount", bill.Amount.StringFixed(2)),
	)
	return bill, nil
}
