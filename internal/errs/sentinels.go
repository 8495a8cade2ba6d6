// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthenticated indicates bad credentials or an invalid/missing token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized indicates a valid identity without permission for the resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation")
)
