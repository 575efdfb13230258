package domain

import "github.com/shopspring/decimal"

// TransferState enumerates the transfer workflow states.
type TransferState string

const (
	TransferIdle                TransferState = "idle"
	TransferFormEntry           TransferState = "form_entry"
	TransferPendingConfirmation TransferState = "pending_confirmation"
	TransferConfirmed           TransferState = "confirmed"
)

// Transfer workflow events, used for state reporting and metrics labels.
const (
	TransferEventBegin   = "begin"
	TransferEventSubmit  = "submit"
	TransferEventConfirm = "confirm"
	TransferEventCancel  = "cancel"
	TransferEventRevert  = "revert"
)

// TransferRequest carries the raw form fields of one transfer attempt.
// Amount arrives as entered by the user and is parsed during validation.
// The request lives only until the workflow reaches a terminal state or
// is cancelled.
type TransferRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        string `json:"amount"`
	Note          string `json:"note,omitempty"`
}

// TransferConfirmation is the validated snapshot shown on the confirmation
// step. ProjectedBalance is the source balance minus the amount, computed
// for display only and never written back to the account.
type TransferConfirmation struct {
	AttemptID        string          `json:"attemptId"`
	From             Account         `json:"from"`
	To               Account         `json:"to"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note,omitempty"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
}

// TransferStatus is the externally visible workflow state, returned by
// GET /v1/transfer and by every transition endpoint.
type TransferStatus struct {
	State        TransferState         `json:"state"`
	Form         TransferRequest       `json:"form"`
	Confirmation *TransferConfirmation `json:"confirmation,omitempty"`
}
