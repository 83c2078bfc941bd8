package oracle

import "math/big"

// PriceSource identifies where a project's unit price was resolved from.
type PriceSource uint8

const (
	// SourceNone marks a record that has never been initialised.
	SourceNone PriceSource = iota
	// SourceManual marks a price set directly by the platform authority.
	SourceManual
	// SourceDexPool marks a price derived from DEX pool reserves.
	SourceDexPool
	// SourceExternalFeed marks a price supplied by an external feed capability.
	SourceExternalFeed
)

// Valid reports whether the source value is within the supported range.
func (s PriceSource) Valid() bool {
	switch s {
	case SourceNone, SourceManual, SourceDexPool, SourceExternalFeed:
		return true
	default:
		return false
	}
}

// String renders the canonical lowercase source label.
func (s PriceSource) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceDexPool:
		return "dexpool"
	case SourceExternalFeed:
		return "feed"
	default:
		return "none"
	}
}

// PriceRecord captures the resolved USD unit price for a project alongside its
// provenance. UnitPriceUSD uses 6-decimal fixed point ($10.50 == 10_500_000).
// LastUpdate is monotonically non-decreasing for the lifetime of the record.
type PriceRecord struct {
	ProjectID    string      `json:"projectId"`
	UnitPriceUSD *big.Int    `json:"unitPriceUsd"`
	Source       PriceSource `json:"source"`
	LastUpdate   int64       `json:"lastUpdate"`
}

// Clone returns a deep copy of the record so callers can safely mutate the
// copy without affecting the stored instance.
func (r *PriceRecord) Clone() *PriceRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.UnitPriceUSD != nil {
		clone.UnitPriceUSD = new(big.Int).Set(r.UnitPriceUSD)
	} else {
		clone.UnitPriceUSD = big.NewInt(0)
	}
	return &clone
}

// FeedObservation abstracts the external oracle network behind a plain
// capability value supplied by the dispatcher: a 6-decimal USD price, the
// feed's reported confidence interval in the same scale, and the publish
// timestamp in unix seconds.
type FeedObservation struct {
	Price       *big.Int
	Confidence  *big.Int
	PublishTime int64
}
