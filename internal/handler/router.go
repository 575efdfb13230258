package handler

import (
	"net/http"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// SnapshotCounter reports snapshot sizes for the health endpoint.
type SnapshotCounter interface {
	Counts() (accounts, transactions, bills int)
}

// Services bundles the service layer handed to the router.
type Services struct {
	Ledger   *service.LedgerService
	Transfer *service.TransferService
	Accounts *service.AccountsService
	Bills    *service.BillsService
	Insights *service.InsightsService
	Overview *service.OverviewService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the dashboard frontend.
func NewRouter(svcs Services, snapshot SnapshotCounter, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger, metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(snapshot))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Accounts
		r.Get("/accounts", listAccountsHandler(svcs.Accounts, logger))
		r.Get("/accounts/transfer-candidates", transferCandidatesHandler(svcs.Accounts, logger))

		// Ledger
		r.Get("/transactions", listTransactionsHandler(svcs.Ledger, logger))
		r.Get("/transactions/categories", listCategoriesHandler(svcs.Ledger, logger))
		r.Get("/transactions/recent", recentTransactionsHandler(svcs.Ledger, logger))
		r.Get("/transactions/month-summary", monthSummaryHandler(svcs.Ledger, logger))

		// Dashboard overview
		r.Get("/overview", overviewHandler(svcs.Overview, logger))

		// Bills
		r.Get("/bills", listBillsHandler(svcs.Bills, logger))
		r.Get("/bills/summary", billsSummaryHandler(svcs.Bills, logger))
		r.Post("/bills/{billID}/pay", payBillHandler(svcs.Bills, logger))

		// Insights
		r.Get("/insights/spending", spendingByCategoryHandler(svcs.Insights, logger))
		r.Get("/insights/monthly", monthlyTrendHandler(svcs.Insights, logger))

		// Transfer workflow
		r.Get("/transfer", transferStatusHandler(svcs.Transfer, logger))
		r.Post("/transfer/begin", transferBeginHandler(svcs.Transfer, logger))
		r.Post("/transfer/submit", transferSubmitHandler(svcs.Transfer, logger))
		r.Post("/transfer/confirm", transferConfirmHandler(svcs.Transfer, logger))
		r.Post("/transfer/cancel", transferCancelHandler(svcs.Transfer, logger))

		// Usage metrics
		r.Get("/metrics/usage", usageMetricsHandler(metrics, logger))
	})

	return r
}

// ============================================================
// Operational — /healthz, /readyz
// ============================================================

func healthzHandler(snapshot SnapshotCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.HealthStatus{Status: "healthy"}
		if snapshot != nil {
			status.Accounts, status.Transactions, status.Bills = snapshot.Counts()
			if status.Accounts == 0 {
				status.Status = "degraded"
			}
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// ============================================================
// Usage metrics — GET /v1/metrics/usage
// ============================================================

func usageMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/metrics/usage")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.GetUsageSnapshot())
	}
}
