package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the users email unique constraint is violated.
	ErrDuplicateEmail = errors.New("email already exists")
)
