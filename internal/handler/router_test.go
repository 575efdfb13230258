package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/handler"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/cache"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/memstore"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := memstore.New(logger)

	ledgerSvc := service.NewLedgerService(store, metrics, logger)
	accountsSvc := service.NewAccountsService(store, metrics, logger)
	billsSvc := service.NewBillsService(store, metrics, logger)

	return handler.NewRouter(handler.Services{
		Ledger:   ledgerSvc,
		Transfer: service.NewTransferService(store, 2*time.Second, metrics, logger),
		Accounts: accountsSvc,
		Bills:    billsSvc,
		Insights: service.NewInsightsService(store, cache.New[any](time.Minute), metrics, logger),
		Overview: service.NewOverviewService(accountsSvc, ledgerSvc, billsSvc, metrics, logger),
	}, store, metrics, logger)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var status domain.HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("expected healthy, got '%s'", status.Status)
	}
	if status.Transactions != 10 {
		t.Errorf("expected 10 transactions, got %d", status.Transactions)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestListTransactions_Filtered(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions?category=Food+%26+Dining&account=1&sort=amount-desc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var page domain.TransactionPage
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", page.Total)
	}
	if page.Transactions[0].Description != "Grocery Store" {
		t.Errorf("expected largest debit first, got '%s'", page.Transactions[0].Description)
	}
}

func TestListTransactions_UnknownSortKey(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions?sort=bogus", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTransferSubmit_ErrorStatusCodes(t *testing.T) {
	router := newTestRouter()

	// Submitting before begin is a workflow state conflict.
	rec := postJSON(t, router, "/v1/transfer/submit", domain.TransferRequest{
		FromAccountID: "1", ToAccountID: "2", Amount: "10",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 before begin, got %d", rec.Code)
	}

	if rec := postJSON(t, router, "/v1/transfer/begin", nil); rec.Code != http.StatusOK {
		t.Fatalf("begin failed: %d", rec.Code)
	}

	rec = postJSON(t, router, "/v1/transfer/submit", domain.TransferRequest{
		FromAccountID: "1", ToAccountID: "1", Amount: "10",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for same account, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/v1/transfer/submit", domain.TransferRequest{
		FromAccountID: "1", ToAccountID: "2", Amount: "999999",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for insufficient funds, got %d", rec.Code)
	}
}

func TestTransferFlow_SubmitConfirm(t *testing.T) {
	router := newTestRouter()

	if rec := postJSON(t, router, "/v1/transfer/begin", nil); rec.Code != http.StatusOK {
		t.Fatalf("begin failed: %d", rec.Code)
	}

	rec := postJSON(t, router, "/v1/transfer/submit", domain.TransferRequest{
		FromAccountID: "1", ToAccountID: "2", Amount: "100.00", Note: "test",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var status domain.TransferStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.State != domain.TransferPendingConfirmation {
		t.Fatalf("expected pending_confirmation, got '%s'", status.State)
	}
	if status.Confirmation == nil || status.Confirmation.ProjectedBalance.String() != "4432.82" {
		t.Fatalf("unexpected confirmation: %+v", status.Confirmation)
	}

	rec = postJSON(t, router, "/v1/transfer/confirm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm failed: %d", rec.Code)
	}
}

func TestUsageMetrics_CountsServedRequests(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/v1/accounts", "/v1/transactions?sort=bogus"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metrics/usage", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var usage domain.UsageMetrics
	if err := json.NewDecoder(rec.Body).Decode(&usage); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The usage request itself is counted after its response is written,
	// so the snapshot covers exactly the two prior requests.
	if usage.Requests != 2 {
		t.Errorf("expected 2 requests, got %d", usage.Requests)
	}
	if usage.ErrorRate != 0.5 {
		t.Errorf("expected error rate 0.5, got %.2f", usage.ErrorRate)
	}
}

func TestPayBill_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/v1/bills/404/pay", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
