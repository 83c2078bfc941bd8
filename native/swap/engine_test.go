package swap

import (
	"errors"
	"math/big"
	"testing"

	"fusionmarket/native/escrow"
	"fusionmarket/native/fees"
)

type escrowState struct {
	escrows map[[32]byte]*escrow.Escrow
}

func newEscrowState() *escrowState {
	return &escrowState{escrows: make(map[[32]byte]*escrow.Escrow)}
}

func (m *escrowState) EscrowGet(id [32]byte) (*escrow.Escrow, bool, error) {
	record, ok := m.escrows[id]
	if !ok {
		return nil, false, nil
	}
	return record.Clone(), true, nil
}

func (m *escrowState) EscrowPut(record *escrow.Escrow) error {
	m.escrows[record.ID] = record.Clone()
	return nil
}

func redeemFixture(t *testing.T, cfg Config) (*Engine, *escrowState, [32]byte, [20]byte) {
	t.Helper()
	state := newEscrowState()
	ledger := escrow.NewEngine()
	ledger.SetState(state)

	var owner [20]byte
	owner[19] = 0x01
	var assetRef [32]byte
	assetRef[31] = 0xAA

	// One whole token at 9 decimals, vested immediately.
	record, _, err := ledger.Deposit(owner, assetRef, big.NewInt(1_000_000_000), 0, 0, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	engine := NewEngine()
	engine.SetLedger(ledger)
	engine.SetConfig(cfg)
	return engine, state, record.ID, owner
}

func TestRedeem(t *testing.T) {
	engine, state, id, owner := redeemFixture(t, Config{MaxRarityBonusBps: 5_000})
	record := testRecord(5_000_000)
	record.LastUpdate = 2_000

	released, tokenAmount, effects, err := engine.Redeem(id, record, 2_000, 2_000)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if released.State != escrow.StateReleased {
		t.Fatalf("expected released escrow, got %v", released.State)
	}
	// $5.00 of tokens with a 20% bonus pays out 1.2 tokens.
	if tokenAmount.Cmp(big.NewInt(1_200_000_000)) != 0 {
		t.Fatalf("unexpected payout: %s", tokenAmount)
	}
	if len(effects) != 1 {
		t.Fatalf("expected a single payout effect, got %d", len(effects))
	}
	if effects[0].To != owner || effects[0].From != escrow.VaultAddress {
		t.Fatalf("payout must flow vault to owner")
	}
	if effects[0].Amount.Cmp(tokenAmount) != 0 {
		t.Fatalf("payout effect mismatch: %s", effects[0].Amount)
	}
	if state.escrows[id].State != escrow.StateReleased {
		t.Fatalf("escrow not settled in storage")
	}
}

func TestRedeemFeeSplit(t *testing.T) {
	split, err := fees.NewSplit(250, 500, 100)
	if err != nil {
		t.Fatalf("new split: %v", err)
	}
	engine, _, id, owner := redeemFixture(t, Config{MaxRarityBonusBps: 5_000, FeeSplit: &split})
	var platform, project, royalty [20]byte
	platform[0], project[0], royalty[0] = 0x10, 0x20, 0x30
	engine.SetTreasuries(platform, project, royalty)

	record := testRecord(5_000_000)
	record.LastUpdate = 2_000

	_, tokenAmount, effects, err := engine.Redeem(id, record, 2_000, 2_000)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if len(effects) != 4 {
		t.Fatalf("expected four transfer effects, got %d", len(effects))
	}

	total := new(big.Int)
	byRecipient := make(map[[20]byte]*big.Int)
	for _, effect := range effects {
		total.Add(total, effect.Amount)
		byRecipient[effect.To] = effect.Amount
	}
	if total.Cmp(tokenAmount) != 0 {
		t.Fatalf("effects sum %s, payout %s", total, tokenAmount)
	}
	if byRecipient[platform].Cmp(big.NewInt(30_000_000)) != 0 {
		t.Fatalf("unexpected platform fee: %s", byRecipient[platform])
	}
	if byRecipient[project].Cmp(big.NewInt(60_000_000)) != 0 {
		t.Fatalf("unexpected project fee: %s", byRecipient[project])
	}
	if byRecipient[royalty].Cmp(big.NewInt(12_000_000)) != 0 {
		t.Fatalf("unexpected royalty fee: %s", byRecipient[royalty])
	}
	if byRecipient[owner].Cmp(big.NewInt(1_098_000_000)) != 0 {
		t.Fatalf("unexpected owner payout: %s", byRecipient[owner])
	}
}

func TestRedeemStalePriceLocks(t *testing.T) {
	engine, state, id, _ := redeemFixture(t, Config{})
	record := testRecord(5_000_000)
	record.LastUpdate = 1_000

	if _, _, _, err := engine.Redeem(id, record, 0, 1_000+3_601); !errors.Is(err, ErrOracleStale) {
		t.Fatalf("expected ErrOracleStale, got %v", err)
	}
	if state.escrows[id].State.Terminal() {
		t.Fatalf("locked redemption must not settle the escrow")
	}
}

func TestRedeemBonusOutOfRange(t *testing.T) {
	engine, _, id, _ := redeemFixture(t, Config{MaxRarityBonusBps: 2_000})
	record := testRecord(5_000_000)
	record.LastUpdate = 2_000

	if _, _, _, err := engine.Redeem(id, record, 2_001, 2_000); !errors.Is(err, ErrRarityBonusOutOfRange) {
		t.Fatalf("expected ErrRarityBonusOutOfRange, got %v", err)
	}
	if _, _, _, err := engine.Redeem(id, record, -1, 2_000); !errors.Is(err, ErrRarityBonusOutOfRange) {
		t.Fatalf("expected ErrRarityBonusOutOfRange for negative bonus, got %v", err)
	}
}

func TestRedeemRequiresVestedEscrow(t *testing.T) {
	state := newEscrowState()
	ledger := escrow.NewEngine()
	ledger.SetState(state)

	var owner [20]byte
	owner[19] = 0x01
	var assetRef [32]byte
	record, _, err := ledger.Deposit(owner, assetRef, big.NewInt(1_000_000_000), 1_000, 0, 1, 1_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	engine := NewEngine()
	engine.SetLedger(ledger)

	price := testRecord(5_000_000)
	price.LastUpdate = 1_500
	if _, _, _, err := engine.Redeem(record.ID, price, 0, 1_500); !errors.Is(err, escrow.ErrNotReady) {
		t.Fatalf("expected escrow.ErrNotReady, got %v", err)
	}
}
