package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Ledger — GET /v1/transactions and derived views
// ============================================================

func listTransactionsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions")
		defer span.End()

		query := service.LedgerQuery{
			Search:   r.URL.Query().Get("search"),
			Account:  r.URL.Query().Get("account"),
			Category: r.URL.Query().Get("category"),
			Sort:     r.URL.Query().Get("sort"),
			Limit:    parseLimit(r),
		}
		span.SetAttributes(attribute.String("ledger.sort", query.Sort))

		page, err := svc.Query(ctx, query)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func listCategoriesHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions/categories")
		defer span.End()

		categories, err := svc.Categories(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
	}
}

func recentTransactionsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions/recent")
		defer span.End()

		recent, err := svc.Recent(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, recent)
	}
}

func monthSummaryHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions/month-summary")
		defer span.End()

		summary, err := svc.MonthSummary(ctx, time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
