package oracle

import (
	"errors"
	"math/big"
	"strings"

	"fusionmarket/core/events"
	"fusionmarket/core/types"
)

var errNilState = errors.New("oracle engine: state not configured")

const maxDecimals = 18

type engineState interface {
	PriceRecordGet(projectID string) (*PriceRecord, bool, error)
	PriceRecordPut(record *PriceRecord) error
}

// Params controls the guardrails applied to price updates. The values are
// supplied by the platform configuration and normalised before use.
type Params struct {
	MinPoolReserve       *big.Int
	MaxFeedAgeSeconds    int64
	MaxFeedConfidenceBps uint32
	MaxAgeManualSeconds  int64
	MaxAgeDexPoolSeconds int64
	MaxAgeFeedSeconds    int64
}

// Normalise applies the platform defaults to any unset guardrail. The one hour
// staleness window matches the redemption lock threshold used elsewhere.
func (p Params) Normalise() Params {
	cfg := p
	if cfg.MinPoolReserve == nil || cfg.MinPoolReserve.Sign() <= 0 {
		cfg.MinPoolReserve = big.NewInt(1)
	} else {
		cfg.MinPoolReserve = new(big.Int).Set(cfg.MinPoolReserve)
	}
	if cfg.MaxFeedAgeSeconds <= 0 {
		cfg.MaxFeedAgeSeconds = 120
	}
	if cfg.MaxFeedConfidenceBps == 0 {
		cfg.MaxFeedConfidenceBps = 200
	}
	if cfg.MaxAgeManualSeconds <= 0 {
		cfg.MaxAgeManualSeconds = 3600
	}
	if cfg.MaxAgeDexPoolSeconds <= 0 {
		cfg.MaxAgeDexPoolSeconds = 3600
	}
	if cfg.MaxAgeFeedSeconds <= 0 {
		cfg.MaxAgeFeedSeconds = 3600
	}
	return cfg
}

// MaxAgeFor resolves the staleness window for the supplied price source.
func (p Params) MaxAgeFor(source PriceSource) int64 {
	switch source {
	case SourceDexPool:
		return p.MaxAgeDexPoolSeconds
	case SourceExternalFeed:
		return p.MaxAgeFeedSeconds
	default:
		return p.MaxAgeManualSeconds
	}
}

// Engine resolves and persists per-project price records. Every update path
// shares the PriceRecord output shape so downstream consumers never branch on
// provenance beyond the staleness window duration.
type Engine struct {
	state   engineState
	emitter events.Emitter
	params  Params
}

// NewEngine creates a price oracle engine with a no-op emitter and default
// guardrails.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}, params: Params{}.Normalise()}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetParams replaces the guardrail configuration.
func (e *Engine) SetParams(params Params) { e.params = params.Normalise() }

// Params returns the active guardrail configuration.
func (e *Engine) Params() Params { return e.params }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(oracleEvent{evt: event})
}

func (e *Engine) loadRecord(projectID string) (*PriceRecord, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return nil, false, ErrProjectRequired
	}
	return e.state.PriceRecordGet(trimmed)
}

func (e *Engine) storeRecord(record *PriceRecord, prior *PriceRecord, now int64) (*PriceRecord, error) {
	// LastUpdate never regresses even when the dispatcher replays an older
	// timestamp against a fresher record.
	if prior != nil && now < prior.LastUpdate {
		now = prior.LastUpdate
	}
	record.LastUpdate = now
	if err := e.state.PriceRecordPut(record); err != nil {
		return nil, err
	}
	e.emit(NewPriceUpdatedEvent(record))
	return record.Clone(), nil
}

// SetManual overwrites the project's price record with an authority-supplied
// USD unit price.
func (e *Engine) SetManual(projectID string, price *big.Int, now int64) (*PriceRecord, error) {
	prior, _, err := e.loadRecord(projectID)
	if err != nil {
		return nil, err
	}
	if price == nil || price.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	record := &PriceRecord{
		ProjectID:    strings.TrimSpace(projectID),
		UnitPriceUSD: new(big.Int).Set(price),
		Source:       SourceManual,
	}
	return e.storeRecord(record, prior, now)
}

// UpdateFromPool derives the unit price from DEX pool reserves. The quote
// reserve is divided by the asset reserve and normalised to 6-decimal USD
// fixed point, rounding toward zero.
func (e *Engine) UpdateFromPool(projectID string, reserveAsset, reserveQuote *big.Int, assetDecimals, quoteDecimals uint8, now int64) (*PriceRecord, error) {
	prior, _, err := e.loadRecord(projectID)
	if err != nil {
		return nil, err
	}
	if assetDecimals > maxDecimals || quoteDecimals > maxDecimals {
		return nil, ErrInvalidDecimals
	}
	if reserveAsset == nil || reserveAsset.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	if reserveAsset.Sign() < 0 || reserveQuote == nil || reserveQuote.Sign() < 0 {
		return nil, ErrInsufficientLiquidity
	}
	if reserveAsset.Cmp(e.params.MinPoolReserve) < 0 || reserveQuote.Cmp(e.params.MinPoolReserve) < 0 {
		return nil, ErrInsufficientLiquidity
	}
	price := poolUnitPrice(reserveAsset, reserveQuote, assetDecimals, quoteDecimals)
	if price.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	record := &PriceRecord{
		ProjectID:    strings.TrimSpace(projectID),
		UnitPriceUSD: price,
		Source:       SourceDexPool,
	}
	return e.storeRecord(record, prior, now)
}

// UpdateFromFeed validates an external feed observation and, when it passes
// the freshness and confidence guardrails, records it as the current price.
// A rejected observation leaves the prior record untouched.
func (e *Engine) UpdateFromFeed(projectID string, obs FeedObservation, now int64) (*PriceRecord, error) {
	prior, _, err := e.loadRecord(projectID)
	if err != nil {
		return nil, err
	}
	if obs.Price == nil || obs.Price.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	if now-obs.PublishTime > e.params.MaxFeedAgeSeconds {
		return nil, ErrFeedTooStale
	}
	if obs.Confidence != nil && obs.Confidence.Sign() > 0 {
		// confidence/price > ceiling, compared via cross multiplication to
		// stay in integer math: confidence*10000 > price*ceilingBps.
		lhs := new(big.Int).Mul(obs.Confidence, big.NewInt(10_000))
		rhs := new(big.Int).Mul(obs.Price, big.NewInt(int64(e.params.MaxFeedConfidenceBps)))
		if lhs.Cmp(rhs) > 0 {
			return nil, ErrFeedConfidenceTooLow
		}
	}
	record := &PriceRecord{
		ProjectID:    strings.TrimSpace(projectID),
		UnitPriceUSD: new(big.Int).Set(obs.Price),
		Source:       SourceExternalFeed,
	}
	return e.storeRecord(record, prior, now)
}

// Current returns the project's price record or ErrPriceNotSet when no update
// path has ever succeeded.
func (e *Engine) Current(projectID string) (*PriceRecord, error) {
	record, ok, err := e.loadRecord(projectID)
	if err != nil {
		return nil, err
	}
	if !ok || record == nil || record.UnitPriceUSD == nil || record.UnitPriceUSD.Sign() <= 0 {
		return nil, ErrPriceNotSet
	}
	return record.Clone(), nil
}

// poolUnitPrice computes reserveQuote/reserveAsset normalised to 6-decimal
// USD fixed point: reserveQuote * 10^(assetDecimals+6-quoteDecimals) /
// reserveAsset, with the exponent folded into whichever side keeps it
// non-negative.
func poolUnitPrice(reserveAsset, reserveQuote *big.Int, assetDecimals, quoteDecimals uint8) *big.Int {
	exponent := int64(assetDecimals) + 6 - int64(quoteDecimals)
	numerator := new(big.Int).Set(reserveQuote)
	denominator := new(big.Int).Set(reserveAsset)
	if exponent >= 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(exponent), nil)
		numerator.Mul(numerator, scale)
	} else {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(-exponent), nil)
		denominator.Mul(denominator, scale)
	}
	return numerator.Quo(numerator, denominator)
}
