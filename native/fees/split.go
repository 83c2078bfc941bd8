package fees

import (
	"errors"
	"math/big"
)

const bpsDenominator = 10_000

var (
	// ErrBpsOutOfRange rejects basis-point shares outside [0, 10000].
	ErrBpsOutOfRange = errors.New("fees: basis points out of range")
	// ErrSplitOverflow rejects splits whose shares sum past 10000.
	ErrSplitOverflow = errors.New("fees: split exceeds 10000 basis points")
	// ErrNegativeAmount rejects distribution of a negative gross amount.
	ErrNegativeAmount = errors.New("fees: negative amount")
)

// Split is a validated basis-point fee schedule. Construct it through
// NewSplit; the zero value distributes everything to the remainder.
type Split struct {
	PlatformBps uint32
	ProjectBps  uint32
	RoyaltyBps  uint32
}

// NewSplit validates the shares at construction. Shares are never clamped;
// out-of-range input is an error.
func NewSplit(platformBps, projectBps, royaltyBps uint32) (Split, error) {
	for _, bps := range []uint32{platformBps, projectBps, royaltyBps} {
		if bps > bpsDenominator {
			return Split{}, ErrBpsOutOfRange
		}
	}
	if platformBps+projectBps+royaltyBps > bpsDenominator {
		return Split{}, ErrSplitOverflow
	}
	return Split{PlatformBps: platformBps, ProjectBps: projectBps, RoyaltyBps: royaltyBps}, nil
}

// TotalBps returns the combined fee share of the split.
func (s Split) TotalBps() uint32 {
	return s.PlatformBps + s.ProjectBps + s.RoyaltyBps
}

// Distribution carries the exact decomposition of a gross amount. The four
// parts always sum to the gross that produced them.
type Distribution struct {
	Platform  *big.Int
	Project   *big.Int
	Royalty   *big.Int
	Remainder *big.Int
}

func share(gross *big.Int, bps uint32) *big.Int {
	out := new(big.Int).Mul(gross, big.NewInt(int64(bps)))
	return out.Quo(out, big.NewInt(bpsDenominator))
}

// Distribute splits gross into floor shares plus an exact remainder.
// Rounding dust always lands in the remainder, never in a fee bucket.
func Distribute(gross *big.Int, split Split) (Distribution, error) {
	if gross == nil || gross.Sign() < 0 {
		return Distribution{}, ErrNegativeAmount
	}
	dist := Distribution{
		Platform: share(gross, split.PlatformBps),
		Project:  share(gross, split.ProjectBps),
		Royalty:  share(gross, split.RoyaltyBps),
	}
	remainder := new(big.Int).Set(gross)
	remainder.Sub(remainder, dist.Platform)
	remainder.Sub(remainder, dist.Project)
	remainder.Sub(remainder, dist.Royalty)
	dist.Remainder = remainder
	return dist, nil
}
