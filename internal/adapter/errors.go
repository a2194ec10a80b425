package adapter

import "errors"

var (
	// ErrUnauthorized is returned for HTTP 401 responses: missing, expired,
	// or invalid token, or a failed login.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned for HTTP 404 responses. The server responds
	// identically whether the record is absent or owned by someone else.
	ErrNotFound = errors.New("credential not found")

	// ErrConflict is returned for HTTP 409 responses (email already taken).
	ErrConflict = errors.New("conflict")
)
