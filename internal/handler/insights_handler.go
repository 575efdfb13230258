package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Insights — /v1/insights
// ============================================================

func spendingByCategoryHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/insights/spending")
		defer span.End()

		spend, err := svc.SpendingByCategory(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, spend)
	}
}

func monthlyTrendHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/insights/monthly")
		defer span.End()

		trend, err := svc.MonthlyTrend(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, trend)
	}
}

// ============================================================
// Overview — GET /v1/overview
// ============================================================

func overviewHandler(svc *service.OverviewService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/overview")
		defer span.End()

		overview, err := svc.Get(ctx, time.Now())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, overview)
	}
}
