package model

import "errors"

// Error kinds recognised at the HTTP boundary. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can map them to statuses with errors.Is
// while keeping the detail in the message.
var (
	// ErrValidation marks missing or malformed client input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a duplicate resource or a deletion blocked by dependents.
	ErrConflict = errors.New("conflict")

	// ErrAuthentication marks a missing, invalid, or expired credential.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization marks a valid credential with the wrong role.
	ErrAuthorization = errors.New("access denied")

	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrNoCapacity marks a booking that asks for more seats than remain.
	ErrNoCapacity = errors.New("not enough seats available")
)
