package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint (the slug index)
	// rejects a write.
	ErrConflict = errors.New("conflict")
)
