package service

import "errors"

// Sentinel errors returned by the service layer. Handlers match them with
// [errors.Is] to choose response codes.
var (
	// ErrInvalidDataProvided is returned when a required field is missing or
	// empty. User-correctable.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when login credentials do not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenCreationFailed is returned when signing a JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised result of any token
	// validation failure; callers never see low-level JWT errors.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNotOwner is returned by the access guard when the credential exists
	// but belongs to a different principal. The HTTP boundary deliberately
	// collapses this and not-found into one response; the distinction lives
	// only server-side.
	ErrNotOwner = errors.New("principal does not own the credential")
)
