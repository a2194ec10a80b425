package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/models"
)

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository]. It executes all credential CRUD operations against
// the "credentials" table using the embedded [*DB] connection.
//
// The envelope column and the account_username column are opaque here: this
// layer never sees plaintext and never constructs or parses an envelope.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, credential_id, etc.). Secret-bearing columns
// are never logged.
type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner lets scanCredential work on both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCredential reads one row in credentialColumns order. url and notes are
// nullable; NULL becomes the empty string at this boundary.
func scanCredential(row rowScanner) (models.Credential, error) {
	var credential models.Credential
	var url, notes sql.NullString

	err := row.Scan(
		&credential.CredentialID,
		&credential.UserID,
		&credential.ServiceName,
		&credential.AccountUsername,
		&credential.PasswordEnvelope,
		&url,
		&notes,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		return models.Credential{}, err
	}

	credential.URL = url.String
	credential.Notes = notes.String

	return credential, nil
}

// Create persists a new credential record and returns the fully populated
// [models.Credential] with server-assigned fields (CredentialID, CreatedAt,
// UpdatedAt).
//
// The INSERT uses the [createCredential] query which returns all columns via
// a RETURNING clause, so the caller receives the canonical database
// representation of the newly created record.
func (r *credentialRepository) Create(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createCredential,
		credential.UserID,
		credential.ServiceName,
		credential.AccountUsername,
		credential.PasswordEnvelope,
		credential.URL,
		credential.Notes,
	)

	created, err := scanCredential(row)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Create").
			Int64("user_id", credential.UserID).
			Msg("failed to insert credential")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindByID retrieves one credential by its id, regardless of owner. The
// ownership decision belongs to the access guard above this layer — keeping
// the lookup owner-blind is what lets the service distinguish "absent" from
// "not yours".
//
// Returns [ErrCredentialNotFound] when no row matches.
func (r *credentialRepository) FindByID(ctx context.Context, credentialID int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, findCredentialByID, credentialID)

	credential, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}

		log.Err(err).
			Str("func", "*credentialRepository.FindByID").
			Int64("credential_id", credentialID).
			Msg("failed to query credential")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return credential, nil
}

// ListByOwner retrieves every credential owned by ownerID, newest update
// first. A non-empty filter narrows by service name, case-insensitively.
//
// Returns an empty slice when the owner has no matching records.
func (r *credentialRepository) ListByOwner(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListByOwnerQuery(ownerID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.ListByOwner").
			Int64("user_id", ownerID).
			Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.ListByOwner").
			Int64("user_id", ownerID).
			Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Credential, 0, 20)

	for rows.Next() {
		credential, scanErr := scanCredential(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*credentialRepository.ListByOwner").
				Int64("user_id", ownerID).
				Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, credential)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*credentialRepository.ListByOwner").
			Int64("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Update applies the non-nil fields of update to one credential row and
// returns the refreshed record. The UPDATE is a single statement, so the
// envelope column is always replaced as a whole value — a torn envelope is
// impossible at this layer. user_id is not among the columns the builder can
// set.
//
// Returns [ErrCredentialNotFound] when the id does not exist.
func (r *credentialRepository) Update(ctx context.Context, update models.CredentialUpdate) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCredentialQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Update").
			Int64("credential_id", update.CredentialID).
			Msg("failed to build update query")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)

	updated, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}

		log.Err(err).
			Str("func", "*credentialRepository.Update").
			Int64("credential_id", update.CredentialID).
			Msg("failed to execute update")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// Delete removes one credential row.
//
// Returns [ErrCredentialNotFound] when the id does not exist.
func (r *credentialRepository) Delete(ctx context.Context, credentialID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteCredential, credentialID)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Delete").
			Int64("credential_id", credentialID).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Delete").
			Int64("credential_id", credentialID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
