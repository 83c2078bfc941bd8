package escrow

import (
	"errors"
	"math/big"
	"testing"
)

type mockState struct {
	escrows map[[32]byte]*Escrow
}

func newMockState() *mockState {
	return &mockState{escrows: make(map[[32]byte]*Escrow)}
}

func (m *mockState) EscrowGet(id [32]byte) (*Escrow, bool, error) {
	record, ok := m.escrows[id]
	if !ok {
		return nil, false, nil
	}
	return record.Clone(), true, nil
}

func (m *mockState) EscrowPut(record *Escrow) error {
	m.escrows[record.ID] = record.Clone()
	return nil
}

func newTestEngine() (*Engine, *mockState) {
	engine := NewEngine()
	state := newMockState()
	engine.SetState(state)
	return engine, state
}

func testOwner() [20]byte {
	var owner [20]byte
	owner[19] = 0x01
	return owner
}

func testAssetRef() [32]byte {
	var ref [32]byte
	ref[31] = 0xAA
	return ref
}

func TestDeposit(t *testing.T) {
	engine, state := newTestEngine()
	owner := testOwner()

	record, effect, err := engine.Deposit(owner, testAssetRef(), big.NewInt(500), 100, 50, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if record.State != StateVesting {
		t.Fatalf("expected vesting state, got %v", record.State)
	}
	if record.VestingStart != 1_000 {
		t.Fatalf("unexpected vesting start: %d", record.VestingStart)
	}
	if effect.From != owner || effect.To != VaultAddress {
		t.Fatalf("deposit effect must fund the vault")
	}
	if effect.Amount.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("unexpected effect amount: %s", effect.Amount)
	}
	if len(state.escrows) != 1 {
		t.Fatalf("expected one stored escrow, got %d", len(state.escrows))
	}

	// Mutating the returned record must not leak into storage.
	record.Amount.SetInt64(1)
	stored, _, _ := state.EscrowGet(record.ID)
	if stored.Amount.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("stored amount mutated: %s", stored.Amount)
	}
}

func TestDepositRejectsZeroAmount(t *testing.T) {
	engine, state := newTestEngine()

	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(0), 100, 50, 1, 1_000); !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), nil, 100, 50, 1, 1_000); !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount for nil amount, got %v", err)
	}
	if len(state.escrows) != 0 {
		t.Fatalf("rejected deposit must not create a record")
	}
}

func TestDepositRejectsNegativeDurations(t *testing.T) {
	engine, _ := newTestEngine()

	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(10), -1, 0, 1, 1_000); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for vesting, got %v", err)
	}
	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(10), 0, -1, 1, 1_000); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for cooldown, got %v", err)
	}
}

func TestDepositRejectsReusedNonce(t *testing.T) {
	engine, _ := newTestEngine()

	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(10), 0, 0, 7, 1_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(20), 0, 0, 7, 1_001); !errors.Is(err, ErrDuplicateEscrow) {
		t.Fatalf("expected ErrDuplicateEscrow, got %v", err)
	}
}

func TestTryAdvance(t *testing.T) {
	engine, _ := newTestEngine()

	record, _, err := engine.Deposit(testOwner(), testAssetRef(), big.NewInt(500), 100, 50, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	advanced, err := engine.TryAdvance(record.ID, 1_050)
	if err != nil {
		t.Fatalf("advance mid-vesting: %v", err)
	}
	if advanced.State != StateVesting {
		t.Fatalf("advanced early: %v", advanced.State)
	}

	advanced, err = engine.TryAdvance(record.ID, 1_100)
	if err != nil {
		t.Fatalf("advance at vesting end: %v", err)
	}
	if advanced.State != StateReady {
		t.Fatalf("expected ready, got %v", advanced.State)
	}
	if advanced.CooldownUntil != 1_150 {
		t.Fatalf("unexpected cooldown deadline: %d", advanced.CooldownUntil)
	}

	// Second advance is a no-op.
	again, err := engine.TryAdvance(record.ID, 2_000)
	if err != nil {
		t.Fatalf("repeat advance: %v", err)
	}
	if again.State != StateReady || again.CooldownUntil != 1_150 {
		t.Fatalf("advance is not idempotent: %+v", again)
	}
}

func TestRelease(t *testing.T) {
	engine, _ := newTestEngine()
	owner := testOwner()

	record, _, err := engine.Deposit(owner, testAssetRef(), big.NewInt(500), 100, 50, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if _, _, err := engine.Release(record.ID, 1_200); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady while vesting, got %v", err)
	}

	if _, err := engine.TryAdvance(record.ID, 1_100); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, _, err := engine.Release(record.ID, 1_149); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady during cooldown, got %v", err)
	}

	released, effect, err := engine.Release(record.ID, 1_150)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.State != StateReleased {
		t.Fatalf("expected released, got %v", released.State)
	}
	if effect.From != VaultAddress || effect.To != owner {
		t.Fatalf("release effect must pay the owner from the vault")
	}
	if effect.Amount.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("unexpected release amount: %s", effect.Amount)
	}

	if _, _, err := engine.Release(record.ID, 2_000); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	engine, _ := newTestEngine()
	owner := testOwner()

	record, _, err := engine.Deposit(owner, testAssetRef(), big.NewInt(500), 0, 0, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := engine.TryAdvance(record.ID, 1_000); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, _, err := engine.Release(record.ID, 1_000); err != nil {
		t.Fatalf("release: %v", err)
	}

	after, err := engine.TryAdvance(record.ID, 9_999)
	if err != nil {
		t.Fatalf("advance after release: %v", err)
	}
	if after.State != StateReleased {
		t.Fatalf("terminal state mutated: %v", after.State)
	}
	if _, _, err := engine.Cancel(record.ID, owner, 9_999); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled on cancel, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	engine, _ := newTestEngine()
	owner := testOwner()

	record, _, err := engine.Deposit(owner, testAssetRef(), big.NewInt(500), 100, 50, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	var stranger [20]byte
	stranger[0] = 0xFF
	if _, _, err := engine.Cancel(record.ID, stranger, 1_010); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	cancelled, effect, err := engine.Cancel(record.ID, owner, 1_010)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.State != StateCancelled {
		t.Fatalf("expected cancelled, got %v", cancelled.State)
	}
	if effect.From != VaultAddress || effect.To != owner || effect.Amount.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("unexpected refund effect: %+v", effect)
	}
}

func TestDeriveIDDeterministic(t *testing.T) {
	a := DeriveID(testOwner(), testAssetRef(), 1)
	b := DeriveID(testOwner(), testAssetRef(), 1)
	if a != b {
		t.Fatalf("identifier derivation not deterministic")
	}
	if a == DeriveID(testOwner(), testAssetRef(), 2) {
		t.Fatalf("distinct nonces must yield distinct identifiers")
	}
}
