package payments

import (
	"errors"
	"fmt"
)

// Reasons why a transaction is not applied. They are wrapped in a
// *NotAppliedError and can be tested with errors.Is.
var (
	// ErrAccountLocked is returned for any transaction on a frozen account.
	ErrAccountLocked = errors.New("account locked")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the available funds.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRepeatTransaction is returned when a deposit reuses a transaction id.
	ErrRepeatTransaction = errors.New("repeat transaction")
	// ErrTransactionNotFound is returned when a dispute, resolve or chargeback
	// references a deposit unknown to the client.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidDisputeState is returned when the referenced deposit cannot
	// make the requested dispute transition.
	ErrInvalidDisputeState = errors.New("invalid state for disputed transaction")
	// ErrUnexpected reports a broken internal invariant.
	ErrUnexpected = errors.New("unexpected error")
)

// ErrMalformedTransaction is returned when raw input cannot be turned into a
// Transaction. It is never returned by the Engine.
var ErrMalformedTransaction = errors.New("malformed transaction")

// NotAppliedError describes a transaction that was not applied.
//
// Some reasons are valid business rejections (locked account, insufficient
// funds) and need no further handling. The others point to corrupted or
// lost upstream messages, or to a bookkeeping bug; IsFailure tells them apart.
type NotAppliedError struct {
	Reason error  // one of the Err* sentinels
	Tx     uint32 // transaction id, set for repeat and not found reasons
	Detail string
}

func (e *NotAppliedError) Error() string {
	switch e.Reason {
	case ErrRepeatTransaction, ErrTransactionNotFound:
		return fmt.Sprintf("%v: %d", e.Reason, e.Tx)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Reason, e.Detail)
	}
	return e.Reason.Error()
}

func (e *NotAppliedError) Unwrap() error { return e.Reason }

// IsFailure reports whether e is a system failure (true) rather than a valid
// rejection of the transaction (false).
func (e *NotAppliedError) IsFailure() bool {
	switch e.Reason {
	case ErrAccountLocked, ErrInsufficientFunds:
		return false
	default:
		return true
	}
}

// IsFailure reports whether err is a *NotAppliedError that is a system
// failure. Errors of any other type are failures too.
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	var nae *NotAppliedError
	if errors.As(err, &nae) {
		return nae.IsFailure()
	}
	return true
}

func notApplied(reason error) *NotAppliedError {
	return &NotAppliedError{Reason: reason}
}

func repeatTransaction(tx uint32) *NotAppliedError {
	return &NotAppliedError{Reason: ErrRepeatTransaction, Tx: tx}
}

func transactionNotFound(tx uint32) *NotAppliedError {
	return &NotAppliedError{Reason: ErrTransactionNotFound, Tx: tx}
}

func invalidDisputeState(tx uint32, err error) *NotAppliedError {
	return &NotAppliedError{Reason: ErrInvalidDisputeState, Tx: tx, Detail: err.Error()}
}

func unexpected(tx uint32, detail string) *NotAppliedError {
	return &NotAppliedError{Reason: ErrUnexpected, Tx: tx, Detail: detail}
}
