package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error types for consistent error handling across the BFA.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a validation error (bad input). Message is the
// user-visible text; the caller can retry with corrected input.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrInsufficientFunds indicates the source account cannot cover the
// requested amount.
type ErrInsufficientFunds struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *ErrInsufficientFunds) Error() string {
	return "Insufficient funds in source account"
}

// ErrInvalidState indicates a workflow event arrived in a state that does
// not accept it. The workflow state is left unchanged.
type ErrInvalidState struct {
	State TransferState
	Event string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("cannot %s while transfer workflow is in state '%s'", e.Event, e.State)
}
