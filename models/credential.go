package models

import "time"

// Credential is a secret record owned by exactly one user. The stored
// password exists only as an authenticated-encryption envelope; decryption
// happens exclusively inside the vault service's reveal operation and the
// result is never persisted.
type Credential struct {
	// CredentialID is the unique identifier assigned at creation.
	CredentialID int64 `json:"id"`

	// UserID is the owning user. Set at creation, never reassigned; it is
	// the sole authorization boundary for every operation on the record.
	UserID int64 `json:"-"`

	// ServiceName is the free-text label of the external service.
	ServiceName string `json:"serviceName"`

	// AccountUsername is the identifier for the external service, kept as
	// raw bytes to preserve arbitrary encodings. The caller-visible view
	// decodes it to text — see [Credential.Sanitized].
	AccountUsername []byte `json:"-"`

	// PasswordEnvelope is the base64 form of nonce(12) || tag(16) || ciphertext.
	// Never serialized: only the reveal operation may turn it back into
	// plaintext.
	PasswordEnvelope string `json:"-"`

	// URL is an optional link to the external service.
	URL string `json:"url"`

	// Notes is optional free text.
	Notes string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

// Sanitized returns the metadata-only view of the credential that every
// operation except reveal responds with. The envelope is dropped entirely
// and the account username is decoded to text at this boundary.
func (c Credential) Sanitized() CredentialResponse {
	return CredentialResponse{
		CredentialID:    c.CredentialID,
		ServiceName:     c.ServiceName,
		AccountUsername: string(c.AccountUsername),
		URL:             c.URL,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CredentialResponse is the sanitized caller-visible representation of a
// credential. It carries no secret material in any field.
type CredentialResponse struct {
	CredentialID    int64     `json:"id"`
	ServiceName     string    `json:"serviceName"`
	AccountUsername string    `json:"accountUsername"`
	URL             string    `json:"url"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CredentialCreate is the inbound payload for creating a credential.
// ServiceName, AccountUsername and Password are required and must be
// non-empty.
type CredentialCreate struct {
	ServiceName     string `json:"serviceName"`
	AccountUsername string `json:"accountUsername"`
	Password        string `json:"password"`
	URL             string `json:"url"`
	Notes           string `json:"notes"`
}

// CredentialUpdate is the inbound payload for a partial update. Nil fields
// are left untouched. The owner is never mutable through this path, and a
// provided Password replaces the stored envelope as a whole.
type CredentialUpdate struct {
	// CredentialID and UserID are resolved server-side from the URL and the
	// authenticated principal; they are never taken from the request body.
	CredentialID int64 `json:"-"`
	UserID       int64 `json:"-"`

	ServiceName     *string `json:"serviceName"`
	AccountUsername *string `json:"accountUsername"`
	Password        *string `json:"password"`
	URL             *string `json:"url"`
	Notes           *string `json:"notes"`

	// PasswordEnvelope is filled by the vault service after sealing
	// Password. The repository only ever sees the envelope.
	PasswordEnvelope *string `json:"-"`
}

// Empty reports whether the update carries no field at all.
func (u CredentialUpdate) Empty() bool {
	return u.ServiceName == nil &&
		u.AccountUsername == nil &&
		u.Password == nil &&
		u.URL == nil &&
		u.Notes == nil
}

// ListFilter narrows owner-scoped listings. ServiceName, when non-empty, is
// matched case-insensitively as a substring.
type ListFilter struct {
	ServiceName string
}

// RevealResponse is the only payload that ever carries a plaintext secret
// back to a caller.
type RevealResponse struct {
	Password string `json:"password"`
}
