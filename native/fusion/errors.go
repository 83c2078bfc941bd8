package fusion

import "errors"

var (
	// ErrTooFewInputs rejects attempts with fewer than two inputs.
	ErrTooFewInputs = errors.New("fusion: too few inputs")
	// ErrTooManyInputs rejects attempts exceeding the configured maximum.
	ErrTooManyInputs = errors.New("fusion: too many inputs")
	// ErrCollectionMismatch rejects cross-collection inputs when the config
	// forbids them.
	ErrCollectionMismatch = errors.New("fusion: collection mismatch")
	// ErrConfigInactive rejects attempts against a deactivated config.
	ErrConfigInactive = errors.New("fusion: config inactive")
	// ErrInvalidConfig indicates a structurally invalid fusion config.
	ErrInvalidConfig = errors.New("fusion: invalid config")
	// ErrInvalidInput indicates a nil or malformed input asset.
	ErrInvalidInput = errors.New("fusion: invalid input asset")
	// ErrConfigNotFound indicates no config exists for the collection.
	ErrConfigNotFound = errors.New("fusion: config not found")
)
