package escrow

import "errors"

var (
	// ErrZeroAmount rejects deposits of zero or negative value.
	ErrZeroAmount = errors.New("escrow: amount must be positive")
	// ErrInvalidDuration rejects negative vesting or cooldown durations.
	ErrInvalidDuration = errors.New("escrow: negative duration")
	// ErrNotFound indicates no escrow exists under the given identifier.
	ErrNotFound = errors.New("escrow: not found")
	// ErrDuplicateEscrow indicates the derived identifier is already taken.
	ErrDuplicateEscrow = errors.New("escrow: identifier already in use")
	// ErrNotReady blocks release before vesting and cooldown complete.
	ErrNotReady = errors.New("escrow: not ready for release")
	// ErrUnauthorized rejects lifecycle calls from anyone but the owner.
	ErrUnauthorized = errors.New("escrow: caller is not the owner")
	// ErrAlreadySettled rejects transitions out of a terminal state.
	ErrAlreadySettled = errors.New("escrow: already settled")
	// ErrInvalidEscrow indicates a malformed record reached the engine.
	ErrInvalidEscrow = errors.New("escrow: invalid record")
)
