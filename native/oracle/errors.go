package oracle

import "errors"

var (
	ErrInvalidPrice          = errors.New("oracle: price must be positive")
	ErrPriceNotSet           = errors.New("oracle: price not set")
	ErrDivideByZero          = errors.New("oracle: zero asset reserve")
	ErrInsufficientLiquidity = errors.New("oracle: insufficient pool liquidity")
	ErrFeedTooStale          = errors.New("oracle: feed observation too stale")
	ErrFeedConfidenceTooLow  = errors.New("oracle: feed confidence too low")
	ErrInvalidDecimals       = errors.New("oracle: decimals out of range")
	ErrProjectRequired       = errors.New("oracle: project id required")
)
