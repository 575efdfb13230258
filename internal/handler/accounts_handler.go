package handler

import (
	"net/http"

	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Accounts — GET /v1/accounts
// ============================================================

func listAccountsHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts")
		defer span.End()

		summary, err := svc.Summary(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func transferCandidatesHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/transfer-candidates")
		defer span.End()

		fromID := r.URL.Query().Get("from")
		span.SetAttributes(attribute.String("transfer.from", fromID))

		candidates, err := svc.TransferCandidates(ctx, fromID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, candidates)
	}
}
