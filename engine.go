package payments

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine applies transactions to the accounts of an AccountStore.
//
// The engine holds no state of its own besides the store it owns. It is not
// safe for concurrent use: transactions are applied one at a time, in the
// order Handle is called.
type Engine struct {
	store  AccountStore
	logger *zap.Logger
}

// NewEngine creates an Engine owning store. A nil logger discards logs.
func NewEngine(store AccountStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// Store returns the underlying account store.
func (e *Engine) Store() AccountStore { return e.store }

// Handle applies tx to the account of its client.
//
// It returns a *NotAppliedError for every case where the transaction was not
// applied. Some of them are valid rejections and need no handling, see
// NotAppliedError.IsFailure. A transaction that is not applied leaves the
// account untouched, though the account itself is created if the client was
// never seen before.
func (e *Engine) Handle(tx Transaction) error {
	account := e.store.GetOrCreate(tx.ClientID())
	if account.locked {
		return notApplied(ErrAccountLocked)
	}

	switch v := tx.(type) {
	case Deposit:
		return e.deposit(account, v)
	case Withdrawal:
		return e.withdraw(account, v)
	case Dispute:
		return e.dispute(account, v)
	case Resolve:
		return e.resolve(account, v)
	case Chargeback:
		return e.chargeback(account, v)
	default:
		return unexpected(tx.TxID(), fmt.Sprintf("unsupported transaction type %T", tx))
	}
}

func (e *Engine) deposit(a *Account, tx Deposit) error {
	if _, exists := a.deposits[tx.Tx]; exists {
		return repeatTransaction(tx.Tx)
	}
	if !tx.Amount.IsPositive() {
		return unexpected(tx.Tx, "deposit amount must be positive, got "+tx.Amount.String())
	}
	a.total = a.total.Add(tx.Amount)
	a.deposits[tx.Tx] = newDepositRecord(tx.Amount)
	return nil
}

func (e *Engine) withdraw(a *Account, tx Withdrawal) error {
	if !tx.Amount.IsPositive() {
		return unexpected(tx.Tx, "withdrawal amount must be positive, got "+tx.Amount.String())
	}
	if a.Available().LessThan(tx.Amount) {
		return notApplied(ErrInsufficientFunds)
	}
	a.total = a.total.Sub(tx.Amount)
	return nil
}

func (e *Engine) dispute(a *Account, tx Dispute) error {
	rec, ok := a.deposits[tx.Tx]
	if !ok {
		return transactionNotFound(tx.Tx)
	}
	if err := rec.dispute(); err != nil {
		return invalidDisputeState(tx.Tx, err)
	}
	a.disputed = a.disputed.Add(rec.amount)
	return nil
}

func (e *Engine) resolve(a *Account, tx Resolve) error {
	rec, ok := a.deposits[tx.Tx]
	if !ok {
		return transactionNotFound(tx.Tx)
	}
	if err := rec.resolve(); err != nil {
		return invalidDisputeState(tx.Tx, err)
	}
	// Freeing more than what is disputed does not prevent resolving this
	// dispute, but other disputes may no longer be covered.
	if a.FreeDisputed(rec.amount) {
		e.logClamp(a, tx)
	}
	return nil
}

func (e *Engine) chargeback(a *Account, tx Chargeback) error {
	rec, ok := a.deposits[tx.Tx]
	if !ok {
		return transactionNotFound(tx.Tx)
	}
	if err := rec.refund(); err != nil {
		return invalidDisputeState(tx.Tx, err)
	}
	if a.FreeDisputed(rec.amount) {
		e.logClamp(a, tx)
	}
	// may overdraw the account if the deposit was already partially withdrawn.
	a.total = a.total.Sub(rec.amount)
	a.locked = true
	return nil
}

func (e *Engine) logClamp(a *Account, tx Transaction) {
	e.logger.Warn("freed more funds than disputed, dispute total clamped to zero",
		zap.Uint16("client", a.client),
		zap.Uint32("tx", tx.TxID()),
		zap.String("type", string(tx.What())),
	)
}
