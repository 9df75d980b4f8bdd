package payments

import (
	"iter"
	"maps"
	"slices"
)

// AccountStore gives access to accounts by client id.
//
// An AccountStore is owned by a single Engine, which is its only writer.
type AccountStore interface {
	// Get returns the account of client, or false if the client was never
	// referenced. The returned account must not be mutated.
	Get(client uint16) (*Account, bool)

	// GetOrCreate returns the account of client, creating an empty one if
	// needed. This is the only way to create an account.
	GetOrCreate(client uint16) *Account

	// Statements returns a summary for every account in the store.
	// The sequence is a snapshot and can be iterated several times; its order
	// is left to the implementation.
	Statements() iter.Seq[Statement]
}

// MemoryStore is an AccountStore backed by a map.
//
// Its zero value is not ready to use, call NewMemoryStore.
type MemoryStore struct {
	accounts map[uint16]*Account
}

// NewMemoryStore creates an empty store. Optional accounts are preloaded.
func NewMemoryStore(accounts ...*Account) *MemoryStore {
	s := &MemoryStore{accounts: make(map[uint16]*Account, len(accounts))}
	for _, a := range accounts {
		s.accounts[a.client] = a
	}
	return s
}

// Get implements AccountStore.
func (s *MemoryStore) Get(client uint16) (*Account, bool) {
	a, ok := s.accounts[client]
	return a, ok
}

// GetOrCreate implements AccountStore.
func (s *MemoryStore) GetOrCreate(client uint16) *Account {
	a, ok := s.accounts[client]
	if !ok {
		a = NewAccount(client)
		s.accounts[client] = a
	}
	return a
}

// Len returns the number of accounts in the store.
func (s *MemoryStore) Len() int { return len(s.accounts) }

// Statements implements AccountStore. Statements are taken when Statements
// is called and yielded by ascending client id.
func (s *MemoryStore) Statements() iter.Seq[Statement] {
	clients := slices.Sorted(maps.Keys(s.accounts))
	stmts := make([]Statement, 0, len(clients))
	for _, client := range clients {
		stmts = append(stmts, s.accounts[client].Statement())
	}
	return slices.Values(stmts)
}
