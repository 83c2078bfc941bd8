package escrow

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

var escrowPrefix = []byte("escrow/")

// Storage abstracts the key-value backend escrow records persist into.
type Storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

type storedEscrow struct {
	ID              [32]byte
	Owner           [20]byte
	AssetRef        [32]byte
	Amount          string
	VestingStart    uint64
	VestingDuration uint64
	CooldownSeconds uint64
	CooldownUntil   uint64
	State           uint8
}

func escrowKey(id [32]byte) []byte {
	encoded := hex.EncodeToString(id[:])
	buf := make([]byte, len(escrowPrefix)+len(encoded))
	copy(buf, escrowPrefix)
	copy(buf[len(escrowPrefix):], encoded)
	return buf
}

// Store persists escrow records keyed by identifier. It satisfies the
// engine's state interface.
type Store struct {
	store Storage
}

// NewStore constructs an escrow store bound to the provided backend.
func NewStore(store Storage) *Store {
	return &Store{store: store}
}

// EscrowGet retrieves the record with the given identifier.
func (s *Store) EscrowGet(id [32]byte) (*Escrow, bool, error) {
	if s == nil || s.store == nil {
		return nil, false, fmt.Errorf("escrow store not initialised")
	}
	var stored storedEscrow
	ok, err := s.store.KVGet(escrowKey(id), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	record, err := fromStoredEscrow(&stored)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// EscrowPut persists the record, overwriting any prior value.
func (s *Store) EscrowPut(record *Escrow) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("escrow store not initialised")
	}
	if record == nil || !record.State.Valid() {
		return ErrInvalidEscrow
	}
	stored := storedEscrow{
		ID:       record.ID,
		Owner:    record.Owner,
		AssetRef: record.AssetRef,
		State:    uint8(record.State),
	}
	if record.Amount != nil {
		stored.Amount = record.Amount.String()
	}
	if record.VestingStart > 0 {
		stored.VestingStart = uint64(record.VestingStart)
	}
	if record.VestingDuration > 0 {
		stored.VestingDuration = uint64(record.VestingDuration)
	}
	if record.CooldownSeconds > 0 {
		stored.CooldownSeconds = uint64(record.CooldownSeconds)
	}
	if record.CooldownUntil > 0 {
		stored.CooldownUntil = uint64(record.CooldownUntil)
	}
	return s.store.KVPut(escrowKey(record.ID), stored)
}

func fromStoredEscrow(stored *storedEscrow) (*Escrow, error) {
	if stored == nil {
		return nil, fmt.Errorf("escrow store: nil stored record")
	}
	record := &Escrow{
		ID:              stored.ID,
		Owner:           stored.Owner,
		AssetRef:        stored.AssetRef,
		Amount:          big.NewInt(0),
		VestingStart:    int64(stored.VestingStart),
		VestingDuration: int64(stored.VestingDuration),
		CooldownSeconds: int64(stored.CooldownSeconds),
		CooldownUntil:   int64(stored.CooldownUntil),
		State:           EscrowState(stored.State),
	}
	if !record.State.Valid() {
		return nil, fmt.Errorf("escrow store: invalid state %d", stored.State)
	}
	if strings.TrimSpace(stored.Amount) != "" {
		amount, ok := new(big.Int).SetString(strings.TrimSpace(stored.Amount), 10)
		if !ok {
			return nil, fmt.Errorf("escrow store: invalid amount %q", stored.Amount)
		}
		record.Amount = amount
	}
	return record, nil
}
