package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testBills() []domain.Bill {
	return []domain.Bill{
		{ID: "1", Name: "Rent Payment", Amount: dec("1850.00"), DueDate: "2025-11-01", Status: domain.BillDue, Category: "Housing"},
		{ID: "2", Name: "Car Insurance", Amount: dec("142.50"), DueDate: "2025-10-28", Status: domain.BillPaid, Category: "Insurance"},
		{ID: "3", Name: "Phone Bill", Amount: dec("65.00"), DueDate: "2025-10-10", Status: domain.BillOverdue, Category: "Utilities"},
	}
}

func TestBillsSummary_SplitsAndTotals(t *testing.T) {
	store := &stubStore{bills: testBills()}
	svc := service.NewBillsService(store, observability.NewMetrics(), zap.NewNop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Due, 2, "overdue bills count as outstanding")
	require.Len(t, summary.Paid, 1)
	assert.True(t, summary.TotalDue.Equal(dec("1915.00")), "got %s", summary.TotalDue)
}

func TestMarkPaid_FlipsStatus(t *testing.T) {
	store := &stubStore{bills: testBills()}
	svc := service.NewBillsService(store, observability.NewMetrics(), zap.NewNop())

	bill, err := svc.MarkPaid(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.BillPaid, bill.Status)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.Due, 1)
	assert.True(t, summary.TotalDue.Equal(dec("65.00")))
}

func TestMarkPaid_UnknownBill(t *testing.T) {
	store := &stubStore{bills: testBills()}
	svc := service.NewBillsService(store, observability.NewMetrics(), zap.NewNop())

	_, err := svc.MarkPaid(context.Background(), "nope")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "bill", notFound.Resource)
}

func TestOverview_AssemblesAllSections(t *testing.T) {
	store := &stubStore{
		accounts: testAccounts(),
		transactions: []domain.Transaction{
			tx("1", "2025-10-25", "Salary Deposit", "3500.00", "Income", "1"),
			tx("2", "2025-10-24", "Electric Company", "-89.23", "Utilities", "1"),
		},
		bills: testBills(),
	}
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	accountsSvc := service.NewAccountsService(store, metrics, logger)
	ledgerSvc := service.NewLedgerService(store, metrics, logger)
	billsSvc := service.NewBillsService(store, metrics, logger)
	svc := service.NewOverviewService(accountsSvc, ledgerSvc, billsSvc, metrics, logger)

	now := time.Date(2025, time.October, 26, 9, 0, 0, 0, time.UTC)
	overview, err := svc.Get(context.Background(), now)
	require.NoError(t, err)

	assert.Len(t, overview.Accounts, 3)
	assert.True(t, overview.TotalBalance.Equal(dec("310.00")))
	assert.Len(t, overview.Recent, 2)
	assert.True(t, overview.MonthSummary.Income.Equal(dec("3500.00")))
	assert.True(t, overview.MonthSummary.Spending.Equal(dec("89.23")))
	assert.True(t, overview.BillsDue.Equal(dec("1915.00")))
}
