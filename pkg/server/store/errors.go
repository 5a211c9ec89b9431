package store

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist or
	// has been soft-deleted.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness rule.
	ErrConflict = errors.New("record already exists")
)
