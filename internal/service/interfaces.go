package service

import (
	"context"

	"github.com/rlozanop/credvault/models"
)

// AuthService handles account registration, login, and JWT lifecycle.
type AuthService interface {
	// RegisterUser creates a new account from the email and plaintext
	// password carried by user. The password is bcrypt-hashed before it
	// reaches storage.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the email/password pair and returns the stored account.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts the principal.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService is the only entry point other layers use to touch credentials.
// Every operation takes the authenticated principal's id explicitly and runs
// Locate → Authorize → Act → Respond; responses other than Reveal are always
// sanitized metadata.
type VaultService interface {
	// Create validates required fields, seals the password into an envelope,
	// and persists the credential for ownerID.
	Create(ctx context.Context, ownerID int64, create models.CredentialCreate) (models.CredentialResponse, error)

	// List returns the owner's credentials, newest update first, optionally
	// filtered by service name substring.
	List(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.CredentialResponse, error)

	// Get returns one credential's sanitized metadata.
	Get(ctx context.Context, ownerID int64, credentialID int64) (models.CredentialResponse, error)

	// Update applies a partial update; a provided password is sealed and
	// replaces the stored envelope, anything else leaves it untouched.
	Update(ctx context.Context, ownerID int64, update models.CredentialUpdate) (models.CredentialResponse, error)

	// Delete removes the credential.
	Delete(ctx context.Context, ownerID int64, credentialID int64) error

	// Reveal opens the envelope and returns the plaintext password. Exactly
	// one audit entry is written before the plaintext leaves this method; if
	// the audit write fails, the reveal fails and nothing is disclosed.
	Reveal(ctx context.Context, ownerID int64, credentialID int64, metadata map[string]any) (string, error)
}

// AccessGuard decides whether a principal may act on a credential. One
// implementation, one rule, invoked identically by every repository-facing
// operation — the check must never be duplicated per handler.
type AccessGuard interface {
	// Authorize returns nil when the principal owns the credential and
	// ErrNotOwner otherwise.
	Authorize(principalID int64, credential models.Credential) error
}
