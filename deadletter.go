package payments

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeadLetter is a transaction that failed for a reason that is not a valid
// rejection: the input or the bookkeeping is likely broken and somebody has
// to look at it. See NotAppliedError.IsFailure.
type DeadLetter struct {
	ID          uuid.UUID
	Transaction Transaction
	Reason      string
}

// NewDeadLetter creates a DeadLetter for tx with a fresh random ID.
func NewDeadLetter(tx Transaction, err error) DeadLetter {
	return DeadLetter{ID: uuid.New(), Transaction: tx, Reason: err.Error()}
}

// MarshalJSON implements the json.Marshaler interface for DeadLetter.
func (d DeadLetter) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Append("id", d.ID)
	w.Append("reason", d.Reason)
	w.Append("transaction", d.Transaction)
	return w.MarshalJSON()
}

// Replay applies dead letters again, in order, and returns the ones that are
// still failures, with their reason updated, and the number of letters that
// were applied. Letters that are now rejected are logged and dropped: they
// no longer need attention.
func Replay(e *Engine, letters []DeadLetter) (remaining []DeadLetter, applied int) {
	for _, dl := range letters {
		err := e.Handle(dl.Transaction)
		switch {
		case err == nil:
			applied++
			e.logger.Info("dead letter applied", append(txFields(dl.Transaction), zap.Stringer("id", dl.ID))...)
		case IsFailure(err):
			dl.Reason = err.Error()
			remaining = append(remaining, dl)
		default:
			e.logger.Info("dead letter rejected", append(txFields(dl.Transaction), zap.Stringer("id", dl.ID), zap.Error(err))...)
		}
	}
	return remaining, applied
}
