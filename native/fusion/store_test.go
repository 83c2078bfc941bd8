package fusion

import (
	"errors"
	"testing"
)

type memKV struct {
	values map[string]storedConfig
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]storedConfig)}
}

func (m *memKV) KVGet(key []byte, out interface{}) (bool, error) {
	value, ok := m.values[string(key)]
	if !ok {
		return false, nil
	}
	*out.(*storedConfig) = value
	return true, nil
}

func (m *memKV) KVPut(key []byte, value interface{}) error {
	m.values[string(key)] = value.(storedConfig)
	return nil
}

func TestConfigStoreRoundTrip(t *testing.T) {
	store := NewStore(newMemKV())
	engine := NewEngine()
	engine.SetState(store)

	cfg := testConfig()
	if err := engine.UpsertConfig(cfg); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	loaded, err := engine.ConfigFor("col-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.BaseSuccessBps != cfg.BaseSuccessBps || loaded.MaxInputs != cfg.MaxInputs {
		t.Fatalf("config mangled in storage: %+v", loaded)
	}
	if len(loaded.InheritanceRules) != len(cfg.InheritanceRules) {
		t.Fatalf("rules lost in storage: %+v", loaded.InheritanceRules)
	}

	if _, err := engine.ConfigFor("col-unknown"); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}

	bad := cfg
	bad.MaxInputs = 0
	if err := engine.UpsertConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
