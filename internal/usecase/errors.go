package usecase

import "errors"

// Shared error kinds the HTTP layer maps onto response statuses. Domain
// packages carry their own sentinels for rule violations; these cover the
// operation-level taxonomy.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrIllegalTransition covers operations invoked outside their valid
	// phase, e.g. a pick before the draft starts or a transfer during it.
	ErrIllegalTransition = errors.New("illegal phase transition")
	// ErrDataUnavailable covers a missing or malformed statistics snapshot
	// at settlement time.
	ErrDataUnavailable = errors.New("statistics snapshot unavailable")
)
