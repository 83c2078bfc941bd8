package fusion

import (
	"fmt"

	"fusionmarket/core/events"
	"fusionmarket/core/types"
)

type engineState interface {
	ConfigGet(collectionID string) (*FusionConfig, bool, error)
	ConfigPut(cfg *FusionConfig) error
}

// Engine runs fusion attempts and manages per-collection fusion configs.
// Attempts are pure in the seed: the same inputs, config, table and seed
// always produce the same outcome.
type Engine struct {
	state   engineState
	emitter events.Emitter
}

// NewEngine returns a fusion engine with a no-op emitter.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetState wires the persistence backend for fusion configs.
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

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(fusionEvent{evt: event})
}

// UpsertConfig validates and persists a collection's fusion config.
func (e *Engine) UpsertConfig(cfg FusionConfig) error {
	if e == nil || e.state == nil {
		return fmt.Errorf("fusion: engine state not configured")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return e.state.ConfigPut(cfg.Clone())
}

// ConfigFor resolves the fusion config governing a collection.
func (e *Engine) ConfigFor(collectionID string) (*FusionConfig, error) {
	if e == nil || e.state == nil {
		return nil, fmt.Errorf("fusion: engine state not configured")
	}
	cfg, ok, err := e.state.ConfigGet(collectionID)
	if err != nil {
		return nil, err
	}
	if !ok || cfg == nil {
		return nil, ErrConfigNotFound
	}
	return cfg.Clone(), nil
}

// AttemptFusion runs one attempt under an explicit config and emits the
// outcome event. Inputs are never mutated; the outcome lists which input
// identifiers burn.
func (e *Engine) AttemptFusion(inputs []*AssetDescriptor, cfg FusionConfig, table *FrequencyTable, seed [32]byte, now int64) (*FusionOutcome, error) {
	outcome, err := Attempt(inputs, cfg, table, seed, now)
	if err != nil {
		return nil, err
	}
	e.emit(NewOutcomeEvent(cfg.CollectionID, outcome))
	return outcome, nil
}

// AttemptFusionFor resolves the collection's stored config and runs the
// attempt under it.
func (e *Engine) AttemptFusionFor(collectionID string, inputs []*AssetDescriptor, table *FrequencyTable, seed [32]byte, now int64) (*FusionOutcome, error) {
	cfg, err := e.ConfigFor(collectionID)
	if err != nil {
		return nil, err
	}
	return e.AttemptFusion(inputs, *cfg, table, seed, now)
}

// Attempt is the pure fusion transition. Validation errors leave the inputs
// conceptually untouched; a Failure outcome is a valid result, not an error.
func Attempt(inputs []*AssetDescriptor, cfg FusionConfig, table *FrequencyTable, seed [32]byte, now int64) (*FusionOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Active {
		return nil, ErrConfigInactive
	}
	if len(inputs) < 2 {
		return nil, ErrTooFewInputs
	}
	if len(inputs) > cfg.MaxInputs {
		return nil, ErrTooManyInputs
	}
	for _, input := range inputs {
		if input == nil {
			return nil, ErrInvalidInput
		}
		if !cfg.AllowCrossCollection && input.CollectionID != cfg.CollectionID {
			return nil, ErrCollectionMismatch
		}
	}

	scores := make([]uint16, len(inputs))
	var sum uint64
	for i, input := range inputs {
		scores[i] = RarityScore(input, table)
		sum += uint64(scores[i])
	}
	avg := sum / uint64(len(inputs))

	successBps := uint64(cfg.BaseSuccessBps) + avg/10
	if successBps > maxScoreBps {
		successBps = maxScoreBps
	}

	d := newDrawer(seed)
	roll := d.draw(maxScoreBps)
	if roll >= successBps {
		burnCount := len(inputs) * int(cfg.FailureBurnBps) / maxScoreBps
		burned := make([][32]byte, 0, burnCount)
		for _, input := range inputs[:burnCount] {
			burned = append(burned, input.ID)
		}
		return &FusionOutcome{Success: false, Burned: burned, SuccessBps: uint32(successBps)}, nil
	}

	level := uint8(0)
	for _, input := range inputs {
		if input.FusionLevel >= level {
			level = input.FusionLevel
		}
	}
	if level < 255 {
		level++
	}

	traits := inheritTraits(inputs, scores, cfg.InheritanceRules, d)
	output := &AssetDescriptor{
		ID:           deriveOutputID(seed, inputs),
		CollectionID: cfg.CollectionID,
		Traits:       traits,
		FusionLevel:  level,
	}
	output.RarityScore = FusedRarity(RarityScore(output, table), scores, level)

	burned := make([][32]byte, 0, len(inputs))
	for _, input := range inputs {
		burned = append(burned, input.ID)
	}
	return &FusionOutcome{
		Success:       true,
		Output:        output,
		Burned:        burned,
		SuccessBps:    uint32(successBps),
		CooldownUntil: now + cfg.CooldownSeconds,
	}, nil
}
