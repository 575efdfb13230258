package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Transfer workflow — /v1/transfer
// ============================================================

func transferStatusHandler(svc *service.TransferService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transfer")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Status(ctx))
	}
}

func transferBeginHandler(svc *service.TransferService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfer/begin")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Begin(ctx))
	}
}

func transferSubmitHandler(svc *service.TransferService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfer/submit")
		defer span.End()

		var req domain.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		status, err := svc.Submit(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func transferConfirmHandler(svc *service.TransferService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfer/confirm")
		defer span.End()

		status, err := svc.Confirm(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func transferCancelHandler(svc *service.TransferService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfer/cancel")
		defer span.End()

		status, err := svc.Cancel(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}
