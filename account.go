package payments

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is the state of a single client's funds.
//
// An Account is only ever mutated by the Engine. Stores hand out pointers to
// their accounts but callers other than the engine must treat them as
// read-only.
type Account struct {
	client uint16

	// total may be negative if the account is overdrawn by a chargeback.
	total decimal.Decimal

	// disputed is the sum of all deposits currently in the Disputed state.
	//
	// It may exceed total when an account accrued disputes beyond its
	// remaining balance. Use Held for the funds actually held back.
	disputed decimal.Decimal

	locked bool

	// deposits indexes every applied deposit by transaction id.
	deposits map[uint32]*DepositRecord
}

// NewAccount creates an unlocked account with zero funds.
func NewAccount(client uint16) *Account {
	return &Account{
		client:   client,
		deposits: make(map[uint32]*DepositRecord),
	}
}

// Client returns the client id owning this account.
func (a *Account) Client() uint16 { return a.client }

// Total returns the raw funds of the account.
func (a *Account) Total() decimal.Decimal { return a.total }

// Disputed returns the sum of all active disputes.
func (a *Account) Disputed() decimal.Decimal { return a.disputed }

// Locked reports whether the account is frozen.
func (a *Account) Locked() bool { return a.locked }

// Deposit returns the deposit applied with transaction id tx.
func (a *Account) Deposit(tx uint32) (*DepositRecord, bool) {
	rec, ok := a.deposits[tx]
	return rec, ok
}

// Available returns the funds available for withdrawal.
func (a *Account) Available() decimal.Decimal {
	return decimal.Max(a.total.Sub(a.disputed), decimal.Zero)
}

// Held returns the part of the total funds held back to cover disputes.
func (a *Account) Held() decimal.Decimal {
	return decimal.Min(a.disputed, decimal.Max(a.total, decimal.Zero))
}

// FreeDisputed releases amount from the active disputes.
//
// The dispute total never goes below zero. FreeDisputed returns true when
// amount exceeded the recorded dispute total and had to be clamped: this
// means the bookkeeping drifted somewhere, the caller should report it but
// it is not an error for the current operation.
func (a *Account) FreeDisputed(amount decimal.Decimal) (clamped bool) {
	remaining := a.disputed.Sub(amount)
	if remaining.IsNegative() {
		a.disputed = decimal.Zero
		return true
	}
	a.disputed = remaining
	return false
}

// Statement returns the account summary, all funds rounded to Precision.
func (a *Account) Statement() Statement {
	return Statement{
		Client:    a.client,
		Available: Round(a.Available()),
		Held:      Round(a.Held()),
		Total:     Round(a.total),
		Locked:    a.locked,
	}
}

// Statement is the reportable summary of an account.
type Statement struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Equal reports whether both statements hold the same values.
func (s Statement) Equal(o Statement) bool {
	return s.Client == o.Client &&
		s.Available.Equal(o.Available) &&
		s.Held.Equal(o.Held) &&
		s.Total.Equal(o.Total) &&
		s.Locked == o.Locked
}

func (s Statement) String() string {
	return fmt.Sprintf("client %d: available=%s held=%s total=%s locked=%t", s.Client, s.Available, s.Held, s.Total, s.Locked)
}

// MarshalJSON implements the json.Marshaler interface for Statement.
func (s Statement) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Append("client", s.Client)
	w.Append("available", s.Available)
	w.Append("held", s.Held)
	w.Append("total", s.Total)
	w.Append("locked", s.Locked)
	return w.MarshalJSON()
}

// DepositRecord is a deposit that was successfully applied to an account.
type DepositRecord struct {
	amount decimal.Decimal
	// status is only changed through the transition methods.
	status DisputeStatus
}

func newDepositRecord(amount decimal.Decimal) *DepositRecord {
	return &DepositRecord{amount: amount, status: NotDisputed}
}

// Amount returns the deposited amount.
func (r *DepositRecord) Amount() decimal.Decimal { return r.amount }

// Status returns the current dispute status.
func (r *DepositRecord) Status() DisputeStatus { return r.status }

// dispute moves the record to Disputed.
func (r *DepositRecord) dispute() error {
	if r.status != NotDisputed && r.status != Resolved {
		return fmt.Errorf("cannot begin dispute from current transaction state %s", r.status)
	}
	r.status = Disputed
	return nil
}

// resolve moves the record from Disputed to Resolved.
func (r *DepositRecord) resolve() error {
	if r.status != Disputed {
		return fmt.Errorf("cannot resolve dispute from current transaction state %s", r.status)
	}
	r.status = Resolved
	return nil
}

// refund moves the record from Disputed to Refunded.
func (r *DepositRecord) refund() error {
	if r.status != Disputed {
		return fmt.Errorf("cannot chargeback from current transaction state %s", r.status)
	}
	r.status = Refunded
	return nil
}
