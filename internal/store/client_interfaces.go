package store

import (
	"context"

	"github.com/rlozanop/credvault/models"
)

// LocalCacheRepository is the client-side cache of sanitized credential
// metadata plus the persisted login session. It holds no secret material:
// the password envelope never leaves the server and plaintext passwords are
// never written locally.
type LocalCacheRepository interface {
	// ReplaceCredentials swaps the cached metadata for a fresh server
	// listing.
	ReplaceCredentials(ctx context.Context, credentials []models.CredentialResponse) error

	// ListCredentials returns the cached metadata, newest update first,
	// optionally narrowed by a case-insensitive service-name substring.
	ListCredentials(ctx context.Context, filter models.ListFilter) ([]models.CredentialResponse, error)

	// SaveSession persists the login session for subsequent invocations.
	SaveSession(ctx context.Context, session models.ClientSession) error

	// LoadSession returns the persisted session. Returns
	// ErrLocalSessionNotFound when the user has not logged in yet.
	LoadSession(ctx context.Context) (models.ClientSession, error)

	// ClearSession removes the persisted session (logout).
	ClearSession(ctx context.Context) error
}
