package fusion

import (
	"fmt"
	"strings"
)

var configPrefix = []byte("fusion/config/")

// Storage abstracts the key-value backend fusion configs persist into.
type Storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

type storedRule struct {
	TraitTypeID uint32
}

type storedConfig struct {
	CollectionID         string
	BaseSuccessBps       uint32
	MaxInputs            uint32
	FailureBurnBps       uint32
	CooldownSeconds      uint64
	AllowCrossCollection bool
	Active               bool
	InheritanceRules     []storedRule
}

func configKey(collectionID string) []byte {
	trimmed := strings.TrimSpace(collectionID)
	buf := make([]byte, len(configPrefix)+len(trimmed))
	copy(buf, configPrefix)
	copy(buf[len(configPrefix):], trimmed)
	return buf
}

// Store persists fusion configs keyed by collection identifier. It satisfies
// the engine's state interface.
type Store struct {
	store Storage
}

// NewStore constructs a fusion config store bound to the provided backend.
func NewStore(store Storage) *Store {
	return &Store{store: store}
}

// ConfigGet retrieves the config for a collection.
func (s *Store) ConfigGet(collectionID string) (*FusionConfig, bool, error) {
	if s == nil || s.store == nil {
		return nil, false, fmt.Errorf("fusion store not initialised")
	}
	var stored storedConfig
	ok, err := s.store.KVGet(configKey(collectionID), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	cfg := &FusionConfig{
		CollectionID:         stored.CollectionID,
		BaseSuccessBps:       stored.BaseSuccessBps,
		MaxInputs:            int(stored.MaxInputs),
		FailureBurnBps:       stored.FailureBurnBps,
		CooldownSeconds:      int64(stored.CooldownSeconds),
		AllowCrossCollection: stored.AllowCrossCollection,
		Active:               stored.Active,
	}
	for _, rule := range stored.InheritanceRules {
		cfg.InheritanceRules = append(cfg.InheritanceRules, TraitInheritanceRule{TraitTypeID: rule.TraitTypeID})
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// ConfigPut persists the config, overwriting any prior value.
func (s *Store) ConfigPut(cfg *FusionConfig) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("fusion store not initialised")
	}
	if cfg == nil {
		return ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	stored := storedConfig{
		CollectionID:         strings.TrimSpace(cfg.CollectionID),
		BaseSuccessBps:       cfg.BaseSuccessBps,
		MaxInputs:            uint32(cfg.MaxInputs),
		FailureBurnBps:       cfg.FailureBurnBps,
		AllowCrossCollection: cfg.AllowCrossCollection,
		Active:               cfg.Active,
	}
	if cfg.CooldownSeconds > 0 {
		stored.CooldownSeconds = uint64(cfg.CooldownSeconds)
	}
	for _, rule := range cfg.InheritanceRules {
		stored.InheritanceRules = append(stored.InheritanceRules, storedRule{TraitTypeID: rule.TraitTypeID})
	}
	return s.store.KVPut(configKey(stored.CollectionID), stored)
}
