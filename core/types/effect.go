package types

import "math/big"

// TransferEffect describes a single value movement the dispatcher must apply
// after a core operation succeeds. The core never moves value itself: every
// mutating operation returns its full new state plus the effects to execute
// atomically alongside it.
type TransferEffect struct {
	Token  string   `json:"token"`
	From   [20]byte `json:"from"`
	To     [20]byte `json:"to"`
	Amount *big.Int `json:"amount"`
	Memo   string   `json:"memo"`
}

// Clone returns a deep copy of the effect so callers can safely retain it.
func (t *TransferEffect) Clone() *TransferEffect {
	if t == nil {
		return nil
	}
	clone := *t
	if t.Amount != nil {
		clone.Amount = new(big.Int).Set(t.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// CloneEffects deep-copies a slice of transfer effects.
func CloneEffects(effects []*TransferEffect) []*TransferEffect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]*TransferEffect, 0, len(effects))
	for _, effect := range effects {
		out = append(out, effect.Clone())
	}
	return out
}
