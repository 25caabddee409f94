package service

import "errors"

// Every failure crossing the service boundary is one of these kinds.
// Underlying store or crypto errors are logged, never returned.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)
