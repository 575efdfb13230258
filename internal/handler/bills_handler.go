package handler

import (
	"net/http"

	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Bills — /v1/bills
// ============================================================

func listBillsHandler(svc *service.BillsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills")
		defer span.End()

		bills, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, bills)
	}
}

func billsSummaryHandler(svc *service.BillsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills/summary")
		defer span.End()

		summary, err := svc.Summary(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func payBillHandler(svc *service.BillsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bills/{billID}/pay")
		defer span.End()

		billID := chi.URLParam(r, "billID")
		if billID == "" {
			writeError(w, http.StatusBadRequest, "bill_id is required")
			return
		}
		span.SetAttributes(attribute.String("bill.id", billID))

		bill, err := svc.MarkPaid(ctx, billID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, bill)
	}
}
