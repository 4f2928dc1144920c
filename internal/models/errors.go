package models

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes at the boundary.
var (
	// ErrNotFound means the requested row does not exist at all.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized means the row exists but belongs to another user.
	// Existence is deliberately revealed; ownership is not.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrEmailTaken means registration hit the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
)
