package storage

import (
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
)

// MemKV is a thread-safe in-memory key-value store with RLP value encoding.
// It satisfies the per-module Storage interfaces and backs tests and tooling
// that need a durable-looking store without an external database.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemKV returns an empty store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

// KVPut encodes the value with RLP and stores it under the key.
func (m *MemKV) KVPut(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = encoded
	return nil
}

// KVGet decodes the stored value into out. The boolean reports whether the
// key exists; a nil out skips decoding.
func (m *MemKV) KVGet(key []byte, out interface{}) (bool, error) {
	m.mu.RLock()
	encoded, ok := m.data[string(key)]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(encoded, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVDelete removes the key. Deleting an absent key is a no-op.
func (m *MemKV) KVDelete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}
