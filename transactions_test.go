package payments

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amount(s string) *decimal.Decimal {
	d := D(s)
	return &d
}

func TestParseTransaction(t *testing.T) {
	testCases := []struct {
		name    string
		kind    string
		amount  *decimal.Decimal
		want    Transaction
		wantErr bool
	}{
		{name: "deposit", kind: "deposit", amount: amount("10"), want: NewDeposit(1, 2, D(10))},
		{name: "deposit rounded half to even", kind: "deposit", amount: amount("1.00005"), want: NewDeposit(1, 2, D("1.0000"))},
		{name: "deposit rounded up", kind: "deposit", amount: amount("1.00015"), want: NewDeposit(1, 2, D("1.0002"))},
		{name: "withdrawal", kind: "withdrawal", amount: amount("5.5"), want: NewWithdrawal(1, 2, D("5.5"))},
		{name: "dispute", kind: "dispute", want: NewDispute(1, 2)},
		{name: "resolve", kind: "resolve", want: NewResolve(1, 2)},
		{name: "chargeback", kind: "chargeback", want: NewChargeback(1, 2)},
		{name: "deposit without amount", kind: "deposit", wantErr: true},
		{name: "zero deposit", kind: "deposit", amount: amount("0"), wantErr: true},
		{name: "negative withdrawal", kind: "withdrawal", amount: amount("-1"), wantErr: true},
		{name: "dispute with amount", kind: "dispute", amount: amount("1"), wantErr: true},
		{name: "unknown type", kind: "transfer", amount: amount("1"), wantErr: true},
		{name: "type is case sensitive", kind: "Deposit", amount: amount("1"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTransaction(tc.kind, 1, 2, tc.amount)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedTransaction) {
					t.Errorf("ParseTransaction() error = %v, want %v", err, ErrMalformedTransaction)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransaction() unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseTransaction() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecodeTransactionJSON_Invalid(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"type":"deposit","client":1,"tx":1}`,
		`{"type":"deposit","client":70000,"tx":1,"amount":1}`,
	} {
		if _, err := DecodeTransactionJSON([]byte(data)); err == nil {
			t.Errorf("DecodeTransactionJSON(%s) expected error, got nil", data)
		}
	}
}
