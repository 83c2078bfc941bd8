package escrow

import (
	"fmt"
	"math/big"

	"fusionmarket/core/events"
	"fusionmarket/core/types"
)

const defaultToken = "FUSE"

type engineState interface {
	EscrowGet(id [32]byte) (*Escrow, bool, error)
	EscrowPut(escrow *Escrow) error
}

// Engine drives the escrow lifecycle. It performs no I/O of its own and
// reads no clock; callers supply the timestamp on every operation.
type Engine struct {
	state   engineState
	emitter events.Emitter
	token   string
}

// NewEngine returns an engine with a no-op event emitter.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}, token: defaultToken}
}

// SetState wires the persistence backend used to resolve escrow records.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter overrides the engine's event emitter. Passing nil restores the
// no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetToken overrides the token symbol stamped on transfer effects.
func (e *Engine) SetToken(symbol string) {
	if symbol != "" {
		e.token = symbol
	}
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(escrowEvent{evt: event})
}

func (e *Engine) load(id [32]byte) (*Escrow, error) {
	if e == nil || e.state == nil {
		return nil, fmt.Errorf("escrow: engine state not configured")
	}
	record, ok, err := e.state.EscrowGet(id)
	if err != nil {
		return nil, err
	}
	if !ok || record == nil {
		return nil, ErrNotFound
	}
	return record.Clone(), nil
}

// Deposit locks funds under a freshly derived identifier and starts the
// vesting clock immediately. The returned effect moves the deposit from the
// owner into the module vault.
func (e *Engine) Deposit(owner [20]byte, assetRef [32]byte, amount *big.Int, vestingDuration, cooldownSeconds int64, nonce uint64, now int64) (*Escrow, *types.TransferEffect, error) {
	if e == nil || e.state == nil {
		return nil, nil, fmt.Errorf("escrow: engine state not configured")
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, nil, ErrZeroAmount
	}
	if vestingDuration < 0 || cooldownSeconds < 0 {
		return nil, nil, ErrInvalidDuration
	}
	id := DeriveID(owner, assetRef, nonce)
	if _, ok, err := e.state.EscrowGet(id); err != nil {
		return nil, nil, err
	} else if ok {
		return nil, nil, ErrDuplicateEscrow
	}
	record := &Escrow{
		ID:              id,
		Owner:           owner,
		AssetRef:        assetRef,
		Amount:          new(big.Int).Set(amount),
		VestingStart:    now,
		VestingDuration: vestingDuration,
		CooldownSeconds: cooldownSeconds,
		State:           StateVesting,
	}
	if err := e.state.EscrowPut(record); err != nil {
		return nil, nil, err
	}
	effect := &types.TransferEffect{
		Token:  e.token,
		From:   owner,
		To:     VaultAddress,
		Amount: new(big.Int).Set(amount),
		Memo:   "escrow deposit",
	}
	e.emit(NewDepositedEvent(record))
	return record.Clone(), effect, nil
}

// TryAdvance recomputes the escrow state from its timestamps. It is
// idempotent and leaves terminal records untouched.
func (e *Engine) TryAdvance(id [32]byte, now int64) (*Escrow, error) {
	record, err := e.load(id)
	if err != nil {
		return nil, err
	}
	if record.State.Terminal() {
		return record, nil
	}
	if record.State == StateVesting && now >= record.VestingStart+record.VestingDuration {
		record.State = StateReady
		record.CooldownUntil = record.VestingStart + record.VestingDuration + record.CooldownSeconds
		if err := e.state.EscrowPut(record); err != nil {
			return nil, err
		}
		e.emit(NewAdvancedEvent(record))
	}
	return record.Clone(), nil
}

// Release settles a ready escrow back to its owner. Both vesting and the
// cooldown window must have fully elapsed.
func (e *Engine) Release(id [32]byte, now int64) (*Escrow, *types.TransferEffect, error) {
	record, err := e.load(id)
	if err != nil {
		return nil, nil, err
	}
	if record.State.Terminal() {
		return nil, nil, ErrAlreadySettled
	}
	if record.State != StateReady || now < record.CooldownUntil {
		return nil, nil, ErrNotReady
	}
	record.State = StateReleased
	if err := e.state.EscrowPut(record); err != nil {
		return nil, nil, err
	}
	effect := &types.TransferEffect{
		Token:  e.token,
		From:   VaultAddress,
		To:     record.Owner,
		Amount: new(big.Int).Set(record.Amount),
		Memo:   "escrow release",
	}
	e.emit(NewReleasedEvent(record))
	return record.Clone(), effect, nil
}

// Cancel refunds a non-terminal escrow to its owner. Only the owner may
// cancel.
func (e *Engine) Cancel(id [32]byte, caller [20]byte, now int64) (*Escrow, *types.TransferEffect, error) {
	record, err := e.load(id)
	if err != nil {
		return nil, nil, err
	}
	if caller != record.Owner {
		return nil, nil, ErrUnauthorized
	}
	if record.State.Terminal() {
		return nil, nil, ErrAlreadySettled
	}
	record.State = StateCancelled
	if err := e.state.EscrowPut(record); err != nil {
		return nil, nil, err
	}
	effect := &types.TransferEffect{
		Token:  e.token,
		From:   VaultAddress,
		To:     record.Owner,
		Amount: new(big.Int).Set(record.Amount),
		Memo:   "escrow cancel",
	}
	e.emit(NewCancelledEvent(record, now))
	return record.Clone(), effect, nil
}
