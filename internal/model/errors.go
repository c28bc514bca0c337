package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores when a unique constraint is violated.
	ErrConflict = errors.New("conflict")
)
