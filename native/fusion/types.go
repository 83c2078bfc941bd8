package fusion

// Trait identifies one attribute value on an asset.
type Trait struct {
	TypeID  uint32
	ValueID uint32
}

// AssetDescriptor is the fusion-relevant view of an asset. RarityScore is a
// cache only; scoring always recomputes from the frequency table.
type AssetDescriptor struct {
	ID           [32]byte
	CollectionID string
	Traits       []Trait
	FusionLevel  uint8
	RarityScore  uint16
}

// Clone returns a deep copy safe to mutate without touching the original.
func (a *AssetDescriptor) Clone() *AssetDescriptor {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Traits != nil {
		clone.Traits = make([]Trait, len(a.Traits))
		copy(clone.Traits, a.Traits)
	}
	return &clone
}

// FrequencyTable records how common each trait value is across a collection,
// in basis points of the population, along with per-type scoring weights.
type FrequencyTable struct {
	frequencies map[Trait]uint32
	typeWeights map[uint32]uint32
}

// NewFrequencyTable returns an empty table. Unknown traits read as maximally
// rare and unknown types carry unit weight.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{
		frequencies: make(map[Trait]uint32),
		typeWeights: make(map[uint32]uint32),
	}
}

// SetFrequency records the population frequency of a trait value in basis
// points. Values above 10000 are stored as 10000.
func (t *FrequencyTable) SetFrequency(typeID, valueID, bps uint32) {
	if t == nil {
		return
	}
	if bps > 10_000 {
		bps = 10_000
	}
	t.frequencies[Trait{TypeID: typeID, ValueID: valueID}] = bps
}

// Frequency returns the recorded frequency for a trait, or 1 bps when the
// trait has never been observed.
func (t *FrequencyTable) Frequency(typeID, valueID uint32) uint32 {
	if t == nil {
		return 1
	}
	bps, ok := t.frequencies[Trait{TypeID: typeID, ValueID: valueID}]
	if !ok || bps == 0 {
		return 1
	}
	return bps
}

// SetTypeWeight records the scoring weight of a trait type.
func (t *FrequencyTable) SetTypeWeight(typeID, weight uint32) {
	if t == nil {
		return
	}
	t.typeWeights[typeID] = weight
}

// TypeWeight returns the scoring weight for a trait type, defaulting to 1.
func (t *FrequencyTable) TypeWeight(typeID uint32) uint32 {
	if t == nil {
		return 1
	}
	weight, ok := t.typeWeights[typeID]
	if !ok || weight == 0 {
		return 1
	}
	return weight
}

// TraitInheritanceRule names a trait type the fused output inherits from one
// of its parents.
type TraitInheritanceRule struct {
	TraitTypeID uint32
}

// FusionConfig is the per-collection fusion rule set. Validate before use;
// the config never changes during an attempt.
type FusionConfig struct {
	CollectionID         string
	BaseSuccessBps       uint32
	MaxInputs            int
	FailureBurnBps       uint32
	CooldownSeconds      int64
	AllowCrossCollection bool
	Active               bool
	InheritanceRules     []TraitInheritanceRule
}

// Validate checks the config's structural invariants.
func (c FusionConfig) Validate() error {
	if c.CollectionID == "" {
		return ErrInvalidConfig
	}
	if c.BaseSuccessBps > 10_000 || c.FailureBurnBps > 10_000 {
		return ErrInvalidConfig
	}
	if c.MaxInputs < 2 {
		return ErrInvalidConfig
	}
	if c.CooldownSeconds < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c *FusionConfig) Clone() *FusionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.InheritanceRules != nil {
		clone.InheritanceRules = make([]TraitInheritanceRule, len(c.InheritanceRules))
		copy(clone.InheritanceRules, c.InheritanceRules)
	}
	return &clone
}

// FusionOutcome reports the result of a fusion attempt. Failure is a valid
// outcome, not an error.
type FusionOutcome struct {
	Success       bool
	Output        *AssetDescriptor
	Burned        [][32]byte
	SuccessBps    uint32
	CooldownUntil int64
}
