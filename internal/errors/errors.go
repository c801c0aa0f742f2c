package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these instead of HTTP status codes; the API layer maps them
// with errors.Is() in responses.go.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated signifies that no acting user could be resolved for
	// the request (missing or stale user cookie). Mapped to 401 Unauthorized.
	ErrUnauthenticated = errors.New("no active user")

	// ErrPermission signifies that the acting user may not touch the
	// requested resource (e.g. another user's session). Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error on the server, kept generic
	// to avoid leaking implementation details. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
