package swap

import "errors"

var (
	// ErrOracleStale locks redemption whenever the price record has aged
	// past its source's staleness window.
	ErrOracleStale = errors.New("swap: oracle price is stale")
	// ErrRarityBonusOutOfRange rejects bonuses outside [0, max]; bonuses
	// are never clamped.
	ErrRarityBonusOutOfRange = errors.New("swap: rarity bonus out of range")
	// ErrPriceUnavailable indicates the record carries no usable price.
	ErrPriceUnavailable = errors.New("swap: price unavailable")
	// ErrNegativeAmount rejects negative conversion inputs.
	ErrNegativeAmount = errors.New("swap: negative amount")
)
