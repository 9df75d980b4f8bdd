package payments

import (
	"context"
	"errors"
	"io"
	"slices"

	"go.uber.org/zap"
)

// Rejected is a transaction that was validly refused, like a withdrawal
// exceeding the available funds.
type Rejected struct {
	Transaction Transaction
	Err         *NotAppliedError
}

// Report is the outcome of processing a transactions file.
type Report struct {
	Processed int // rows read, malformed ones included
	Applied   int

	Rejected    []Rejected
	DeadLetters []DeadLetter
	Malformed   []*RowError

	// Statements of every account of the engine, by ascending client.
	Statements []Statement
}

// Process decodes the CSV transactions from r and applies them to e in order.
//
// Every transaction that is not applied is classified in the report, and
// processing goes on. Only unreadable input or ctx cancellation stop it, in
// which case the accounts of e hold the transactions applied so far.
func Process(ctx context.Context, r io.Reader, e *Engine) (*Report, error) {
	report := &Report{}
	for tx, err := range NewDecoder(r).All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Processed++
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return nil, err
			}
			e.logger.Warn("malformed transaction skipped",
				zap.Int("line", rowErr.Line),
				zap.Uint32("tx", rowErr.Tx),
				zap.Error(rowErr.Err),
			)
			report.Malformed = append(report.Malformed, rowErr)
			continue
		}
		report.apply(e, tx)
	}
	report.Statements = slices.Collect(e.Store().Statements())
	return report, nil
}

func (r *Report) apply(e *Engine, tx Transaction) {
	err := e.Handle(tx)
	if err == nil {
		r.Applied++
		return
	}
	var nae *NotAppliedError
	if IsFailure(err) || !errors.As(err, &nae) {
		e.logger.Error("transaction dead-lettered", append(txFields(tx), zap.Error(err))...)
		r.DeadLetters = append(r.DeadLetters, NewDeadLetter(tx, err))
		return
	}
	e.logger.Info("transaction rejected", append(txFields(tx), zap.Error(err))...)
	r.Rejected = append(r.Rejected, Rejected{Transaction: tx, Err: nae})
}

// txFields returns the log fields describing tx.
func txFields(tx Transaction) []zap.Field {
	fields := []zap.Field{
		zap.Uint16("client", tx.ClientID()),
		zap.Uint32("tx", tx.TxID()),
		zap.String("type", string(tx.What())),
	}
	switch v := tx.(type) {
	case Deposit:
		fields = append(fields, zap.Stringer("amount", v.Amount))
	case Withdrawal:
		fields = append(fields, zap.Stringer("amount", v.Amount))
	}
	return fields
}
