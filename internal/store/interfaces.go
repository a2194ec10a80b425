package store

import (
	"context"

	"github.com/rlozanop/credvault/models"
)

// UserRepository owns persisted user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields. Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves an account by its unique email.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// CredentialRepository owns persisted credential records. It stores the
// password envelope and the account username as opaque byte material and has
// no knowledge of encryption: sealing and opening happen strictly above this
// layer, so plaintext never reaches it.
type CredentialRepository interface {
	// Create persists a new credential, assigning id and timestamps.
	Create(ctx context.Context, credential models.Credential) (models.Credential, error)

	// FindByID retrieves one credential regardless of owner; ownership is
	// decided by the caller. Returns ErrCredentialNotFound when absent.
	FindByID(ctx context.Context, credentialID int64) (models.Credential, error)

	// ListByOwner returns the owner's credentials ordered by updated_at
	// descending. The filter, when non-empty, matches service_name
	// case-insensitively as a substring.
	ListByOwner(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.Credential, error)

	// Update applies the non-nil fields of update and refreshes updated_at.
	// The owner column is never touched. Returns ErrCredentialNotFound when
	// the id does not exist.
	Update(ctx context.Context, update models.CredentialUpdate) (models.Credential, error)

	// Delete removes the record. Returns ErrCredentialNotFound when the id
	// does not exist.
	Delete(ctx context.Context, credentialID int64) error
}

// AuditRepository is the append-only audit trail. No update or delete
// operation exists, here or anywhere else in the codebase.
type AuditRepository interface {
	// Record durably persists one audit entry and returns it with the
	// server-assigned id and timestamp. A nil error means the entry is
	// committed — callers rely on that ordering to make disclosure and its
	// audit record atomic.
	Record(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error)
}
