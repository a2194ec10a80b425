package models

import "time"

// AuditAction identifies a sensitive operation recorded in the audit log.
// It is an open enumeration: new variants may be added, existing entries are
// never rewritten.
type AuditAction string

// AuditActionShowPassword is recorded whenever a credential's plaintext
// password is disclosed to its owner.
const AuditActionShowPassword AuditAction = "SHOW_PASSWORD"

// AuditEntry is an immutable fact describing one sensitive operation.
// Entries are written synchronously before the operation's result leaves the
// server and are never updated or deleted.
type AuditEntry struct {
	// AuditID is assigned by the database at insert time.
	AuditID int64 `json:"id"`

	// UserID is the principal that performed the action.
	UserID int64 `json:"userId"`

	// CredentialID is the record the action targeted.
	CredentialID int64 `json:"credentialId"`

	// Action names the sensitive operation, e.g. [AuditActionShowPassword].
	Action AuditAction `json:"action"`

	// Metadata carries contextual request facts, e.g. originating network
	// address and client identifier. Stored as JSONB.
	Metadata map[string]any `json:"metadata,omitempty"`

	// OccurredAt is the server-side timestamp of the action.
	OccurredAt time.Time `json:"occurredAt"`
}

// TableName returns the name of the database table
// associated with the AuditEntry model.
func (e AuditEntry) TableName() string {
	return "audit_log"
}
