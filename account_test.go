package payments

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_AvailableAndHeld(t *testing.T) {
	testCases := []struct {
		name          string
		total         decimal.Decimal
		disputed      decimal.Decimal
		wantAvailable decimal.Decimal
		wantHeld      decimal.Decimal
	}{
		{
			name:          "no dispute",
			total:         D(10),
			disputed:      D(0),
			wantAvailable: D(10),
			wantHeld:      D(0),
		},
		{
			name:          "partial dispute",
			total:         D(13),
			disputed:      D(5),
			wantAvailable: D(8),
			wantHeld:      D(5),
		},
		{
			name:          "disputes beyond total",
			total:         D(5),
			disputed:      D(10),
			wantAvailable: D(0),
			wantHeld:      D(5),
		},
		{
			name:          "overdrawn account",
			total:         D(-5),
			disputed:      D(2),
			wantAvailable: D(0),
			wantHeld:      D(0), // nothing left to hold
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAccount(1)
			a.total = tc.total
			a.disputed = tc.disputed
			if got := a.Available(); !got.Equal(tc.wantAvailable) {
				t.Errorf("Available() = %v, want %v", got, tc.wantAvailable)
			}
			if got := a.Held(); !got.Equal(tc.wantHeld) {
				t.Errorf("Held() = %v, want %v", got, tc.wantHeld)
			}
		})
	}
}

func TestAccount_FreeDisputed(t *testing.T) {
	a := NewAccount(1)
	a.disputed = D(5)

	if clamped := a.FreeDisputed(D(3)); clamped {
		t.Errorf("FreeDisputed(3) clamped, want no clamp")
	}
	if got, want := a.Disputed(), D(2); !got.Equal(want) {
		t.Errorf("Disputed() = %v, want %v", got, want)
	}

	if clamped := a.FreeDisputed(D(3)); !clamped {
		t.Errorf("FreeDisputed(3) did not clamp, want clamp")
	}
	if got := a.Disputed(); !got.IsZero() {
		t.Errorf("Disputed() = %v, want 0", got)
	}
}

func TestAccount_Statement(t *testing.T) {
	a := NewAccount(7)
	a.total = D("1.00005")
	a.disputed = D("0.00015")
	a.locked = true

	got := a.Statement()
	want := Statement{Client: 7, Available: D("0.9999"), Held: D("0.0002"), Total: D("1"), Locked: true}
	if !got.Equal(want) {
		t.Errorf("Statement() = %v, want %v", got, want)
	}
}

func TestStatement_MarshalJSON(t *testing.T) {
	s := Statement{Client: 2, Available: D("1.5"), Held: D(0), Total: D("1.5")}
	got, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"client":2,"available":1.5,"held":0,"total":1.5,"locked":false}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDepositRecord_Transitions(t *testing.T) {
	type step func(*DepositRecord) error
	var (
		dispute = (*DepositRecord).dispute
		resolve = (*DepositRecord).resolve
		refund  = (*DepositRecord).refund
	)

	testCases := []struct {
		name    string
		prepare []step
		apply   step
		wantErr bool
		want    DisputeStatus
	}{
		{name: "dispute new deposit", apply: dispute, want: Disputed},
		{name: "resolve new deposit", apply: resolve, wantErr: true, want: NotDisputed},
		{name: "refund new deposit", apply: refund, wantErr: true, want: NotDisputed},
		{name: "dispute twice", prepare: []step{dispute}, apply: dispute, wantErr: true, want: Disputed},
		{name: "resolve dispute", prepare: []step{dispute}, apply: resolve, want: Resolved},
		{name: "refund dispute", prepare: []step{dispute}, apply: refund, want: Refunded},
		{name: "dispute again after resolve", prepare: []step{dispute, resolve}, apply: dispute, want: Disputed},
		{name: "refund after resolve", prepare: []step{dispute, resolve}, apply: refund, wantErr: true, want: Resolved},
		{name: "dispute after refund", prepare: []step{dispute, refund}, apply: dispute, wantErr: true, want: Refunded},
		{name: "resolve after refund", prepare: []step{dispute, refund}, apply: resolve, wantErr: true, want: Refunded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := newDepositRecord(D(10))
			for _, s := range tc.prepare {
				if err := s(rec); err != nil {
					t.Fatalf("prepare: unexpected error: %v", err)
				}
			}
			err := tc.apply(rec)
			if (err != nil) != tc.wantErr {
				t.Errorf("transition error = %v, wantErr %v", err, tc.wantErr)
			}
			if got := rec.Status(); got != tc.want {
				t.Errorf("Status() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDisputeStatus(t *testing.T) {
	for _, s := range []DisputeStatus{NotDisputed, Disputed, Resolved, Refunded} {
		got, err := ParseDisputeStatus(s.String())
		if err != nil {
			t.Errorf("ParseDisputeStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseDisputeStatus(%q) = %v, want %v", s, got, s)
		}
	}
	if _, err := ParseDisputeStatus("pending"); err == nil {
		t.Errorf("ParseDisputeStatus(%q) expected error, got nil", "pending")
	}
}
