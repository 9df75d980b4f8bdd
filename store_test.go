package payments

import (
	"slices"
	"testing"
)

func TestMemoryStore_GetOrCreate(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get(1); ok {
		t.Fatalf("Get(1) found an account in an empty store")
	}

	a := s.GetOrCreate(1)
	if a.Client() != 1 || !a.Total().IsZero() || a.Locked() {
		t.Errorf("GetOrCreate(1) = %v, want an empty unlocked account", a.Statement())
	}
	if got, ok := s.Get(1); !ok || got != a {
		t.Errorf("Get(1) = %p, %v, want %p, true", got, ok, a)
	}
	if again := s.GetOrCreate(1); again != a {
		t.Errorf("GetOrCreate(1) created a second account")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestMemoryStore_Statements(t *testing.T) {
	preloaded := NewAccount(3)
	preloaded.total = D(4)
	s := NewMemoryStore(preloaded)
	s.GetOrCreate(10)
	s.GetOrCreate(1).total = D("2.00001")

	seq := s.Statements()
	got := slices.Collect(seq)
	want := []Statement{
		{Client: 1, Available: D(2), Held: D(0), Total: D(2)},
		{Client: 3, Available: D(4), Held: D(0), Total: D(4)},
		{Client: 10, Available: D(0), Held: D(0), Total: D(0)},
	}
	if !slices.EqualFunc(got, want, Statement.Equal) {
		t.Errorf("Statements() = %v, want %v", got, want)
	}

	// a snapshot is not affected by later changes and can be iterated again.
	s.GetOrCreate(2)
	if again := slices.Collect(seq); !slices.EqualFunc(again, want, Statement.Equal) {
		t.Errorf("second iteration = %v, want %v", again, want)
	}
}
