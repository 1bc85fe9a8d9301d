package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a compare-and-set update matched no rows
	// because the entity's current state differs from the expected state.
	ErrConflict = errors.New("entity state conflict")

	// ErrDuplicate is returned when an insert violates a uniqueness rule,
	// such as a second payout for the same booking.
	ErrDuplicate = errors.New("entity already exists")
)
