package payments

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is a typed string identifying transaction types.
type Kind string

// Transaction kinds, as they appear in input files.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Transaction defines the common interface for all transactions handled by the
// Engine. Concrete types are Deposit, Withdrawal, Dispute, Resolve and
// Chargeback.
type Transaction interface {
	What() Kind       // What returns the kind of the transaction.
	ClientID() uint16 // ClientID returns the client whose account is targeted.
	TxID() uint32     // TxID returns the transaction id, or the referenced deposit id for dispute kinds.
	Equal(Transaction) bool
}

type baseTx struct {
	Type   Kind
	Client uint16
	Tx     uint32
}

func (t baseTx) What() Kind       { return t.Type }
func (t baseTx) ClientID() uint16 { return t.Client }
func (t baseTx) TxID() uint32     { return t.Tx }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Append("type", t.Type)
	w.Append("client", t.Client)
	w.Append("tx", t.Tx)
	return w.MarshalJSON()
}

func (t baseTx) String() string {
	return fmt.Sprintf("%s client=%d tx=%d", t.Type, t.Client, t.Tx)
}

// Deposit credits an account. It is the only kind that can later be disputed.
type Deposit struct {
	baseTx
	Amount decimal.Decimal // Amount is positive, rounded to Precision.
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(client uint16, tx uint32, amount decimal.Decimal) Deposit {
	return Deposit{baseTx: baseTx{Type: KindDeposit, Client: client, Tx: tx}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.EmbedFrom(t.baseTx)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Equal reports whether other is the same Deposit.
func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount)
}

func (t Deposit) String() string { return t.baseTx.String() + " amount=" + t.Amount.String() }

// Withdrawal debits an account if enough funds are available.
type Withdrawal struct {
	baseTx
	Amount decimal.Decimal // Amount is positive, rounded to Precision.
}

// NewWithdrawal creates a new Withdrawal transaction.
func NewWithdrawal(client uint16, tx uint32, amount decimal.Decimal) Withdrawal {
	return Withdrawal{baseTx: baseTx{Type: KindWithdrawal, Client: client, Tx: tx}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for Withdrawal.
func (t Withdrawal) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.EmbedFrom(t.baseTx)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Equal reports whether other is the same Withdrawal.
func (t Withdrawal) Equal(other Transaction) bool {
	o, ok := other.(Withdrawal)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount)
}

func (t Withdrawal) String() string { return t.baseTx.String() + " amount=" + t.Amount.String() }

// Dispute claims that the deposit Tx was erroneous and holds its amount.
type Dispute struct{ baseTx }

// NewDispute creates a new Dispute of the deposit tx.
func NewDispute(client uint16, tx uint32) Dispute {
	return Dispute{baseTx{Type: KindDispute, Client: client, Tx: tx}}
}

// Equal reports whether other is the same Dispute.
func (t Dispute) Equal(other Transaction) bool {
	o, ok := other.(Dispute)
	return ok && t.baseTx == o.baseTx
}

// Resolve closes the dispute on deposit Tx and releases the held amount.
type Resolve struct{ baseTx }

// NewResolve creates a new Resolve of the disputed deposit tx.
func NewResolve(client uint16, tx uint32) Resolve {
	return Resolve{baseTx{Type: KindResolve, Client: client, Tx: tx}}
}

// Equal reports whether other is the same Resolve.
func (t Resolve) Equal(other Transaction) bool {
	o, ok := other.(Resolve)
	return ok && t.baseTx == o.baseTx
}

// Chargeback reverses the disputed deposit Tx and freezes the account.
type Chargeback struct{ baseTx }

// NewChargeback creates a new Chargeback of the disputed deposit tx.
func NewChargeback(client uint16, tx uint32) Chargeback {
	return Chargeback{baseTx{Type: KindChargeback, Client: client, Tx: tx}}
}

// Equal reports whether other is the same Chargeback.
func (t Chargeback) Equal(other Transaction) bool {
	o, ok := other.(Chargeback)
	return ok && t.baseTx == o.baseTx
}

// ParseTransaction builds a typed transaction from untyped fields.
//
// Deposits and withdrawals require a strictly positive amount, which is
// rounded to Precision. The dispute kinds must not carry an amount. Errors
// wrap ErrMalformedTransaction.
func ParseTransaction(kind string, client uint16, tx uint32, amount *decimal.Decimal) (Transaction, error) {
	switch Kind(kind) {
	case KindDeposit, KindWithdrawal:
		if amount == nil {
			return nil, fmt.Errorf("%w: %s %d has no amount", ErrMalformedTransaction, kind, tx)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: %s %d amount must be positive, got %s", ErrMalformedTransaction, kind, tx, amount)
		}
		if Kind(kind) == KindDeposit {
			return NewDeposit(client, tx, Round(*amount)), nil
		}
		return NewWithdrawal(client, tx, Round(*amount)), nil
	case KindDispute, KindResolve, KindChargeback:
		if amount != nil {
			return nil, fmt.Errorf("%w: %s %d must not have an amount, got %s", ErrMalformedTransaction, kind, tx, amount)
		}
		switch Kind(kind) {
		case KindDispute:
			return NewDispute(client, tx), nil
		case KindResolve:
			return NewResolve(client, tx), nil
		default:
			return NewChargeback(client, tx), nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrMalformedTransaction, kind)
	}
}

// DecodeTransactionJSON decodes a single transaction from its JSON form, as
// produced by json.Marshal.
func DecodeTransactionJSON(data []byte) (Transaction, error) {
	var temp struct {
		Type   string           `json:"type"`
		Client uint16           `json:"client"`
		Tx     uint32           `json:"tx"`
		Amount *decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return nil, fmt.Errorf("could not decode transaction %q: %w", string(data), err)
	}
	return ParseTransaction(temp.Type, temp.Client, temp.Tx, temp.Amount)
}
