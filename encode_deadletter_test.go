package payments

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadLetter_RoundTrip(t *testing.T) {
	letters := []DeadLetter{
		NewDeadLetter(NewDeposit(1, 1, D("2.5")), repeatTransaction(1)),
		NewDeadLetter(NewDispute(2, 7), transactionNotFound(7)),
	}

	var buf bytes.Buffer
	for _, dl := range letters {
		require.NoError(t, EncodeDeadLetter(&buf, dl))
	}
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), "one line per dead letter")

	got, err := DecodeDeadLetters(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(letters))
	for i, want := range letters {
		assert.Equal(t, want.ID, got[i].ID)
		assert.Equal(t, want.Reason, got[i].Reason)
		assert.True(t, want.Transaction.Equal(got[i].Transaction), "got %v, want %v", got[i].Transaction, want.Transaction)
	}
}

func TestEncodeDeadLetter_Format(t *testing.T) {
	id := uuid.MustParse("0b7f4c1e-5a4a-4c1b-9a53-0d3c2f0f6a11")
	dl := DeadLetter{ID: id, Transaction: NewResolve(3, 4), Reason: "transaction not found: 4"}

	var buf bytes.Buffer
	require.NoError(t, EncodeDeadLetter(&buf, dl))
	want := `{"id":"0b7f4c1e-5a4a-4c1b-9a53-0d3c2f0f6a11","reason":"transaction not found: 4","transaction":{"type":"resolve","client":3,"tx":4}}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeDeadLetters_Invalid(t *testing.T) {
	_, err := DecodeDeadLetters(strings.NewReader("\n{not json}\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = DecodeDeadLetters(strings.NewReader(`{"id":"0b7f4c1e-5a4a-4c1b-9a53-0d3c2f0f6a11","transaction":{"type":"transfer","client":1,"tx":1}}`))
	assert.ErrorIs(t, err, ErrMalformedTransaction)
}

func TestReplay(t *testing.T) {
	e := NewEngine(NewMemoryStore(), nil)
	// the dispute arrived before its deposit.
	report, err := Process(t.Context(), strings.NewReader("type,client,tx,amount\ndispute,1,1,\ndeposit,1,1,10\nresolve,1,2,\n"), e)
	require.NoError(t, err)
	require.Len(t, report.DeadLetters, 2)

	// a withdrawal that is now a plain rejection.
	rejected := NewDeadLetter(NewWithdrawal(1, 3, D(100)), ErrUnexpected)
	remaining, applied := Replay(e, append(slices.Clone(report.DeadLetters), rejected))
	assert.Equal(t, 1, applied)
	require.Len(t, remaining, 1, "the rejected withdrawal is dropped")
	assert.True(t, remaining[0].Transaction.Equal(NewResolve(1, 2)))
	assert.Equal(t, report.DeadLetters[1].ID, remaining[0].ID)

	a, _ := e.Store().Get(1)
	want := Statement{Client: 1, Available: D(0), Held: D(10), Total: D(10)}
	assert.True(t, a.Statement().Equal(want), "got %v, want %v", a.Statement(), want)
}
