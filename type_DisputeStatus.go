package payments

import "fmt"

// DisputeStatus is the position of a deposit in the dispute process.
//
// Valid transitions are:
//
//	NotDisputed -> Disputed
//	Disputed    -> Resolved | Refunded
//	Resolved    -> Disputed
//
// Refunded is terminal.
type DisputeStatus int

const (
	// NotDisputed is the status of a freshly applied deposit.
	NotDisputed DisputeStatus = iota
	// Disputed means the deposit amount is held pending a resolution.
	Disputed
	// Resolved means the dispute was closed and the funds released.
	Resolved
	// Refunded means the deposit was charged back.
	Refunded
)

func (s DisputeStatus) String() string {
	switch s {
	case NotDisputed:
		return "not-disputed"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case Refunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// ParseDisputeStatus parses a string into a DisputeStatus.
func ParseDisputeStatus(s string) (DisputeStatus, error) {
	switch s {
	case "not-disputed":
		return NotDisputed, nil
	case "disputed":
		return Disputed, nil
	case "resolved":
		return Resolved, nil
	case "refunded":
		return Refunded, nil
	default:
		return 0, fmt.Errorf("unknown dispute status: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s DisputeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
