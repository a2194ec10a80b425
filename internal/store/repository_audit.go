package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/models"
)

// auditRepository is the PostgreSQL-backed implementation of
// [AuditRepository]. Only an INSERT exists against the "audit_log" table;
// the append-only property of the trail is enforced by this layer exposing
// nothing else.
type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

// recordAttempts bounds the retries of the audit INSERT. A failed audit
// withholds password disclosure, so transient database errors are worth a
// couple of extra attempts before giving up.
const recordAttempts = 3

// Record durably persists one audit entry. The method returns only after the
// INSERT has committed and the server-assigned id and timestamp have been
// read back, which is what allows the vault service to order disclosure
// strictly after its audit record. Retryable driver errors (connection loss,
// deadlock rollback) are retried up to recordAttempts times.
func (r *auditRepository) Record(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		log.Err(err).
			Str("func", "*auditRepository.Record").
			Int64("user_id", entry.UserID).
			Int64("credential_id", entry.CredentialID).
			Msg("failed to marshal audit metadata")
		return models.AuditEntry{}, fmt.Errorf("marshal audit metadata: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= recordAttempts; attempt++ {
		row := r.DB.QueryRowContext(ctx, recordAuditEntry,
			entry.UserID,
			entry.CredentialID,
			string(entry.Action),
			metadata,
		)

		err = row.Scan(&entry.AuditID, &entry.OccurredAt)
		if err == nil {
			return entry, nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			return models.AuditEntry{}, ErrAuditNotRecorded
		}

		lastErr = err
		if r.DB.errorClassificator.Classify(err) != Retryable {
			break
		}
		log.Warn().Err(err).
			Str("func", "*auditRepository.Record").
			Int("attempt", attempt).
			Msg("retryable error inserting audit entry")
	}

	log.Err(lastErr).
		Str("func", "*auditRepository.Record").
		Int64("user_id", entry.UserID).
		Int64("credential_id", entry.CredentialID).
		Msg("failed to insert audit entry")
	return models.AuditEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, lastErr)
}
