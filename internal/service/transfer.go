package service

import (
	"context"
	"sync"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var transferTracer = otel.Tracer("service/transfer")

// User-visible validation messages, matched by the frontend toasts.
const (
	msgMissingFields     = "Please fill in all required fields"
	msgSameAccount       = "Cannot transfer to the same account"
	msgNonPositiveAmount = "Transfer amount must be greater than zero"
)

// TransferService owns the transfer workflow state machine:
//
//	Idle -> FormEntry -> PendingConfirmation -> Confirmed -> Idle
//
// Confirmed reverts to Idle automatically after revertDelay. All state
// lives in this struct, guarded by the mutex, since the revert timer fires
// on its own goroutine. The workflow reads account balances for validation
// and display only; no balance is ever mutated and no transaction record
// is appended on confirmation.
type TransferService struct {
	store       port.LedgerStore
	metrics     *observability.Metrics
	logger      *zap.Logger
	revertDelay time.Duration

	mu           sync.Mutex
	state        domain.TransferState
	form         domain.TransferRequest
	confirmation *domain.TransferConfirmation
	revertTimer  *time.Timer
}

// NewTransferService creates the transfer workflow in the Idle state.
func NewTransferService(store port.LedgerStore, revertDelay time.Duration, metrics *observability.Metrics, logger *zap.Logger) *TransferService {
	return &TransferService{
		store:       store,
		metrics:     metrics,
		logger:      logger,
		revertDelay: revertDelay,
		state:       domain.TransferIdle,
	}
}

// Status returns the current workflow state, the retained form fields and,
// when present, the confirmation snapshot.
func (s *TransferService) Status(ctx context.Context) *domain.TransferStatus {
	_, span := transferTracer.Start(ctx, "TransferService.Status")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Begin starts a new transfer attempt with empty fields. It is accepted in
// every state; a pending auto-revert timer is stopped first so a stale
// reset cannot fire into the new attempt.
func (s *TransferService) Begin(ctx context.Context) *domain.TransferStatus {
	_, span := transferTracer.Start(ctx, "TransferService.Begin")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRevertTimerLocked()
	s.state = domain.TransferFormEntry
	s.form = domain.TransferRequest{}
	s.confirmation = nil

	s.metrics.IncrTransferEvent(domain.TransferEventBegin, "ok")
	s.logger.Info("transfer workflow started")
	return s.statusLocked()
}

// Submit validates the form. On failure the workflow stays in FormEntry
// with the submitted values retained so the user can correct and resubmit.
// On success it moves to PendingConfirmation and exposes the confirmation
// snapshot, including the projected remaining balance of the source
// account (display only).
func (s *TransferService) Submit(ctx context.Context, req domain.TransferRequest) (*domain.TransferStatus, error) {
	ctx, span := transferTracer.Start(ctx, "TransferService.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("transfer.from", req.FromAccountID),
		attribute.String("transfer.to", req.ToAccountID),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("transfer_submit", time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.TransferFormEntry {
		return nil, &domain.ErrInvalidState{State: s.state, Event: domain.TransferEventSubmit}
	}

	// Field values are retained across validation failures.
	s.form = req

	amount, from, err := s.validateLocked(ctx, req)
	if err != nil {
		s.metrics.IncrTransferEvent(domain.TransferEventSubmit, "rejected")
		s.logger.Warn("transfer rejected",
			zap.String("from", req.FromAccountID),
			zap.String("to", req.ToAccountID),
			zap.String("reason", err.Error()),
		)
		return nil, err
	}

	to, err := s.store.GetAccount(ctx, req.ToAccountID)
	if err != nil {
		s.metrics.IncrTransferEvent(domain.TransferEventSubmit, "rejected")
		return nil, err
	}

	s.state = domain.TransferPendingConfirmation
	s.confirmation = &domain.TransferConfirmation{
		AttemptID:        uuid.New().String(),
		From:             *from,
		To:               *to,
		Amount:           amount,
		Note:             req.Note,
		ProjectedBalance: from.Balance.Sub(amount),
	}

	s.metrics.IncrTransferEvent(domain.TransferEventSubmit, "ok")
	s.logger.Info("transfer pending confirmation",
		zap.String("attempt_id", s.confirmation.AttemptID),
		zap.String("from", from.ID),
		zap.String("to", to.ID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return s.statusLocked(), nil
}

// Cancel returns from the confirmation step to the form with every field
// value preserved.
func (s *TransferService) Cancel(ctx context.Context) (*domain.TransferStatus, error) {
	_, span := transferTracer.Start(ctx, "TransferService.Cancel")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.TransferPendingConfirmation {
		return nil, &domain.ErrInvalidState{State: s.state, Event: domain.TransferEventCancel}
	}

	s.state = domain.TransferFormEntry
	s.confirmation = nil

	s.metrics.IncrTransferEvent(domain.TransferEventCancel, "ok")
	s.logger.Info("transfer cancelled at confirmation step")
	return s.statusLocked(), nil
}

// Confirm completes the transfer. The validated snapshot is trusted as-is;
// nothing is re-checked and no balance changes. After revertDelay the
// workflow resets to Idle with cleared fields.
func (s *TransferService) Confirm(ctx context.Context) (*domain.TransferStatus, error) {
	_, span := transferTracer.Start(ctx, "TransferService.Confirm")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.TransferPendingConfirmation {
		return nil, &domain.ErrInvalidState{State: s.state, Event: domain.TransferEventConfirm}
	}

	s.state = domain.TransferConfirmed
	s.stopRevertTimerLocked()
	s.revertTimer = time.AfterFunc(s.revertDelay, s.autoRevert)

	s.metrics.IncrTransferEvent(domain.TransferEventConfirm, "ok")
	s.logger.Info("transfer confirmed",
		zap.String("attempt_id", s.confirmation.AttemptID),
		zap.String("amount", s.confirmation.Amount.StringFixed(2)),
	)
	return s.statusLocked(), nil
}

// autoRevert fires on the timer goroutine once the success display delay
// elapses. A concurrent Begin stops the timer first, but a fire already in
// flight still has to find the workflow untouched before it resets.
func (s *TransferService) autoRevert() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.TransferConfirmed {
		return
	}

	s.state = domain.TransferIdle
	s.form = domain.TransferRequest{}
	s.confirmation = nil
	s.revertTimer = nil

	s.metrics.IncrTransferEvent(domain.TransferEventRevert, "ok")
	s.logger.Info("transfer workflow reset to idle")
}

// validateLocked runs the submit checks in order: missing fields, same
// account, non-positive amount, insufficient funds. The first failure wins.
func (s *TransferService) validateLocked(ctx context.Context, req domain.TransferRequest) (decimal.Decimal, *domain.Account, error) {
	if req.FromAccountID == "" || req.ToAccountID == "" || req.Amount == "" {
		return decimal.Zero, nil, &domain.ErrValidation{Field: "form", Message: msgMissingFields}
	}

	if req.FromAccountID == req.ToAccountID {
		return decimal.Zero, nil, &domain.ErrValidation{Field: "toAccountId", Message: msgSameAccount}
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, nil, &domain.ErrValidation{Field: "amount", Message: msgNonPositiveAmount}
	}

	from, err := s.store.GetAccount(ctx, req.FromAccountID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if from.Balance.LessThan(amount) {
		return decimal.Zero, nil, &domain.ErrInsufficientFunds{Available: from.Balance, Required: amount}
	}

	return amount, from, nil
}

func (s *TransferService) stopRevertTimerLocked() {
	if s.revertTimer != nil {
		s.revertTimer.Stop()
		s.revertTimer = nil
	}
}

func (s *TransferService) statusLocked() *domain.TransferStatus {
	status := &domain.TransferStatus{
		State: s.state,
		Form:  s.form,
	}
	if s.confirmation != nil {
		snapshot := *s.confirmation
		status.Confirmation = &snapshot
	}
	return status
}
