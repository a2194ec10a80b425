package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/rlozanop/credvault/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	createCredential = `INSERT INTO credentials (
			user_id,
			service_name,
			account_username,
			password_envelope,
			url,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING credential_id, user_id, service_name, account_username, password_envelope, url, notes, created_at, updated_at;`

	findCredentialByID = `SELECT credential_id, user_id, service_name, account_username, password_envelope, url, notes, created_at, updated_at
		FROM credentials
		WHERE credential_id = $1;`

	deleteCredential = `DELETE FROM credentials
		WHERE credential_id = $1;`

	recordAuditEntry = `INSERT INTO audit_log (user_id, credential_id, action, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING audit_id, occurred_at;`
)

// credentialColumns is the canonical column order shared by the squirrel
// builders and the scan helpers below.
var credentialColumns = []string{
	"credential_id",
	"user_id",
	"service_name",
	"account_username",
	"password_envelope",
	"url",
	"notes",
	"created_at",
	"updated_at",
}

// buildListByOwnerQuery builds the owner-scoped listing SELECT. Results are
// always ordered by updated_at descending; a non-empty service-name filter
// adds a case-insensitive substring match.
func buildListByOwnerQuery(ownerID int64, filter models.ListFilter) (string, []any, error) {
	builder := sq.
		Select(credentialColumns...).
		From("credentials").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ServiceName != "" {
		builder = builder.Where(sq.ILike{"service_name": "%" + filter.ServiceName + "%"})
	}

	return builder.ToSql()
}

// buildUpdateCredentialQuery builds the partial UPDATE for a credential.
// Only non-nil fields are set; updated_at is always refreshed, and user_id
// is deliberately absent from the reachable SET columns — ownership is
// immutable through this path. The whole statement targets one row, so the
// envelope is replaced atomically.
func buildUpdateCredentialQuery(update models.CredentialUpdate) (string, []any, error) {
	builder := sq.
		Update("credentials").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"credential_id": update.CredentialID}).
		Suffix("RETURNING " + strings.Join(credentialColumns, ", ")).
		PlaceholderFormat(sq.Dollar)

	if update.ServiceName != nil {
		builder = builder.Set("service_name", *update.ServiceName)
	}
	if update.AccountUsername != nil {
		builder = builder.Set("account_username", []byte(*update.AccountUsername))
	}
	if update.PasswordEnvelope != nil {
		builder = builder.Set("password_envelope", *update.PasswordEnvelope)
	}
	if update.URL != nil {
		builder = builder.Set("url", *update.URL)
	}
	if update.Notes != nil {
		builder = builder.Set("notes", *update.Notes)
	}

	return builder.ToSql()
}
