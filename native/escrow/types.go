package escrow

import "math/big"

// EscrowState tracks the lifecycle of a single escrow record.
type EscrowState uint8

const (
	// StatePending is the transient creation state. Deposits move through
	// it atomically into Vesting and it is never persisted.
	StatePending EscrowState = iota + 1
	// StateVesting holds funds while the vesting window runs.
	StateVesting
	// StateReady means vesting completed; release unlocks once the
	// cooldown expires.
	StateReady
	// StateReleased is terminal: funds returned to the owner.
	StateReleased
	// StateCancelled is terminal: escrow refunded before release.
	StateCancelled
)

// Valid reports whether the state is one of the defined lifecycle states.
func (s EscrowState) Valid() bool {
	switch s {
	case StatePending, StateVesting, StateReady, StateReleased, StateCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the state admits no further transitions.
func (s EscrowState) Terminal() bool {
	return s == StateReleased || s == StateCancelled
}

func (s EscrowState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateVesting:
		return "vesting"
	case StateReady:
		return "ready"
	case StateReleased:
		return "released"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Escrow is a single vesting deposit. Amount never changes after creation;
// only State and CooldownUntil mutate over the record's lifetime.
type Escrow struct {
	ID              [32]byte
	Owner           [20]byte
	AssetRef        [32]byte
	Amount          *big.Int
	VestingStart    int64
	VestingDuration int64
	CooldownSeconds int64
	CooldownUntil   int64
	State           EscrowState
}

// Clone returns a deep copy safe to mutate without touching the original.
func (e *Escrow) Clone() *Escrow {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Amount != nil {
		clone.Amount = new(big.Int).Set(e.Amount)
	}
	return &clone
}
