package oracle

import (
	"fmt"
	"math/big"
	"strings"
)

var priceRecordPrefix = []byte("oracle/price/")

// Storage abstracts the key-value backend price records persist into.
type Storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

type storedPriceRecord struct {
	ProjectID    string
	UnitPriceUSD string
	Source       uint8
	LastUpdate   uint64
}

func priceRecordKey(projectID string) []byte {
	trimmed := strings.TrimSpace(projectID)
	buf := make([]byte, len(priceRecordPrefix)+len(trimmed))
	copy(buf, priceRecordPrefix)
	copy(buf[len(priceRecordPrefix):], trimmed)
	return buf
}

// Store persists price records keyed by project identifier. It satisfies the
// engine's state interface so the dispatcher can hand the engine a durable
// backend directly.
type Store struct {
	store Storage
}

// NewStore constructs a price record store bound to the provided backend.
func NewStore(store Storage) *Store {
	return &Store{store: store}
}

// PriceRecordGet retrieves the record for a project.
func (s *Store) PriceRecordGet(projectID string) (*PriceRecord, bool, error) {
	if s == nil || s.store == nil {
		return nil, false, fmt.Errorf("oracle store not initialised")
	}
	var stored storedPriceRecord
	ok, err := s.store.KVGet(priceRecordKey(projectID), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	record, err := fromStoredPriceRecord(&stored)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// PriceRecordPut persists the record, overwriting any prior value.
func (s *Store) PriceRecordPut(record *PriceRecord) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("oracle store not initialised")
	}
	if record == nil {
		return fmt.Errorf("oracle store: nil record")
	}
	trimmed := strings.TrimSpace(record.ProjectID)
	if trimmed == "" {
		return ErrProjectRequired
	}
	stored := storedPriceRecord{
		ProjectID: trimmed,
		Source:    uint8(record.Source),
	}
	if record.UnitPriceUSD != nil {
		stored.UnitPriceUSD = record.UnitPriceUSD.String()
	}
	if record.LastUpdate > 0 {
		stored.LastUpdate = uint64(record.LastUpdate)
	}
	return s.store.KVPut(priceRecordKey(trimmed), stored)
}

func fromStoredPriceRecord(stored *storedPriceRecord) (*PriceRecord, error) {
	if stored == nil {
		return nil, fmt.Errorf("oracle store: nil stored record")
	}
	record := &PriceRecord{
		ProjectID:    stored.ProjectID,
		Source:       PriceSource(stored.Source),
		UnitPriceUSD: big.NewInt(0),
	}
	if !record.Source.Valid() {
		return nil, fmt.Errorf("oracle store: invalid source %d", stored.Source)
	}
	if strings.TrimSpace(stored.UnitPriceUSD) != "" {
		price, ok := new(big.Int).SetString(strings.TrimSpace(stored.UnitPriceUSD), 10)
		if !ok {
			return nil, fmt.Errorf("oracle store: invalid price %q", stored.UnitPriceUSD)
		}
		record.UnitPriceUSD = price
	}
	record.LastUpdate = int64(stored.LastUpdate)
	return record, nil
}
