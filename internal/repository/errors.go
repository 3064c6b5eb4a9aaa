package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when the store's uniqueness constraint rejects a write.
	// For requests this is the authoritative duplicate-outreach guard.
	ErrDuplicate = errors.New("duplicate: an active entity already exists")

	// ErrConflict is returned when a compare-and-set update finds the entity
	// in a different state than expected.
	ErrConflict = errors.New("conflict: entity state changed")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
