package swap

import (
	"fmt"
	"math/big"

	"fusionmarket/core/events"
	"fusionmarket/core/types"
	"fusionmarket/native/escrow"
	"fusionmarket/native/fees"
	"fusionmarket/native/oracle"
)

// Config carries the redemption guardrails. Pass it by value; the engine
// never mutates it mid-operation.
type Config struct {
	// MaxRarityBonusBps is the ceiling on the rarity bonus a redemption
	// may claim.
	MaxRarityBonusBps int64
	// TokenDecimals is the payout token's base-unit precision.
	TokenDecimals uint8
	// FeeSplit, when set, decomposes the payout into fee transfers.
	FeeSplit *fees.Split
	// Oracle supplies the per-source staleness windows.
	Oracle oracle.Params
}

// Normalise applies platform defaults to unset fields.
func (c Config) Normalise() Config {
	if c.MaxRarityBonusBps <= 0 {
		c.MaxRarityBonusBps = 10_000
	}
	if c.TokenDecimals == 0 {
		c.TokenDecimals = 9
	}
	c.Oracle = c.Oracle.Normalise()
	return c
}

type escrowLedger interface {
	TryAdvance(id [32]byte, now int64) (*escrow.Escrow, error)
	Release(id [32]byte, now int64) (*escrow.Escrow, *types.TransferEffect, error)
}

// Engine converts ready escrows into token payouts at the oracle price.
type Engine struct {
	ledger   escrowLedger
	emitter  events.Emitter
	cfg      Config
	token    string
	platform [20]byte
	project  [20]byte
	royalty  [20]byte
}

// NewEngine returns a redemption engine with default configuration and a
// no-op emitter. Wire the escrow ledger before use.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}, cfg: Config{}.Normalise(), token: "FUSE"}
}

// SetLedger wires the escrow ledger redemptions settle through.
func (e *Engine) SetLedger(ledger escrowLedger) { e.ledger = ledger }

// SetConfig replaces the redemption configuration after normalising it.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg.Normalise() }

// SetEmitter overrides the engine's event emitter. Passing nil restores the
// no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetToken overrides the token symbol stamped on payout effects.
func (e *Engine) SetToken(symbol string) {
	if symbol != "" {
		e.token = symbol
	}
}

// SetTreasuries wires the fee recipient accounts used when a fee split is
// configured.
func (e *Engine) SetTreasuries(platform, project, royalty [20]byte) {
	e.platform = platform
	e.project = project
	e.royalty = royalty
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(swapEvent{evt: event})
}

func (e *Engine) payoutEffect(to [20]byte, amount *big.Int, memo string) *types.TransferEffect {
	return &types.TransferEffect{
		Token:  e.token,
		From:   escrow.VaultAddress,
		To:     to,
		Amount: amount,
		Memo:   memo,
	}
}

// Redeem settles a vested escrow into a token payout. The payout is the
// record's unit price scaled by the rarity bonus and converted to tokens;
// when a fee split is configured it is decomposed into platform, project
// and royalty transfers with the remainder going to the owner.
//
// A stale price is a hard lock regardless of source; redemption never
// falls back to an old value.
func (e *Engine) Redeem(escrowID [32]byte, record *oracle.PriceRecord, rarityBonusBps int64, now int64) (*escrow.Escrow, *big.Int, []*types.TransferEffect, error) {
	if e == nil || e.ledger == nil {
		return nil, nil, nil, fmt.Errorf("swap: escrow ledger not configured")
	}
	if record == nil {
		return nil, nil, nil, ErrPriceUnavailable
	}
	if oracle.IsStale(record, now, e.cfg.Oracle.MaxAgeFor(record.Source)) {
		return nil, nil, nil, ErrOracleStale
	}
	if rarityBonusBps < 0 || rarityBonusBps > e.cfg.MaxRarityBonusBps {
		return nil, nil, nil, ErrRarityBonusOutOfRange
	}

	if _, err := e.ledger.TryAdvance(escrowID, now); err != nil {
		return nil, nil, nil, err
	}
	released, _, err := e.ledger.Release(escrowID, now)
	if err != nil {
		return nil, nil, nil, err
	}

	finalUsd := ApplyRarityBonus(record.UnitPriceUSD, rarityBonusBps)
	tokenAmount, err := QuoteTokens(record, finalUsd, e.cfg.TokenDecimals)
	if err != nil {
		return nil, nil, nil, err
	}

	var effects []*types.TransferEffect
	if e.cfg.FeeSplit != nil {
		dist, err := fees.Distribute(tokenAmount, *e.cfg.FeeSplit)
		if err != nil {
			return nil, nil, nil, err
		}
		if dist.Platform.Sign() > 0 {
			effects = append(effects, e.payoutEffect(e.platform, dist.Platform, "redeem platform fee"))
		}
		if dist.Project.Sign() > 0 {
			effects = append(effects, e.payoutEffect(e.project, dist.Project, "redeem project fee"))
		}
		if dist.Royalty.Sign() > 0 {
			effects = append(effects, e.payoutEffect(e.royalty, dist.Royalty, "redeem royalty fee"))
		}
		effects = append(effects, e.payoutEffect(released.Owner, dist.Remainder, "redeem payout"))
	} else {
		effects = append(effects, e.payoutEffect(released.Owner, new(big.Int).Set(tokenAmount), "redeem payout"))
	}

	e.emit(NewRedeemedEvent(released, record, rarityBonusBps, finalUsd, tokenAmount))
	return released, tokenAmount, effects, nil
}
