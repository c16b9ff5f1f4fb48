package db

import "errors"

var (
	// ErrNotFound indicates a referenced entity id did not resolve
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates an operation was attempted against an
	// entity that is not in the required state
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation indicates malformed or missing arguments
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates an insert lost a race against a concurrent
	// writer; a row with the same unique key already exists
	ErrDuplicate = errors.New("already exists")
)
