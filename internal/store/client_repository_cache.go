// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/models"
)

// ErrLocalSessionNotFound is returned by LoadSession before the first login.
var ErrLocalSessionNotFound = errors.New("local session not found")

// localCacheRepository is the SQLite-backed implementation of
// [LocalCacheRepository].
type localCacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalCacheRepository constructs a [LocalCacheRepository] backed by the
// provided SQLite connection and logger.
func NewLocalCacheRepository(db *DB, logger *logger.Logger) LocalCacheRepository {
	return &localCacheRepository{
		DB:     db,
		logger: logger,
	}
}

// ReplaceCredentials swaps the whole cache for the given listing inside one
// transaction, so a concurrent reader never observes a half-refreshed cache.
func (r *localCacheRepository) ReplaceCredentials(ctx context.Context, credentials []models.CredentialResponse) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*localCacheRepository.ReplaceCredentials").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearCachedCredentials); err != nil {
		log.Err(err).Str("func", "*localCacheRepository.ReplaceCredentials").Msg("failed to clear cache")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, credential := range credentials {
		_, err = tx.ExecContext(ctx, insertCachedCredential,
			credential.CredentialID,
			credential.ServiceName,
			credential.AccountUsername,
			credential.URL,
			credential.Notes,
			credential.CreatedAt,
			credential.UpdatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "*localCacheRepository.ReplaceCredentials").
				Int64("credential_id", credential.CredentialID).
				Msg("failed to insert cached credential")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return tx.Commit()
}

// ListCredentials returns the cached metadata. The service-name filter is
// applied in memory; the cache is small enough that pushing it into SQL buys
// nothing.
func (r *localCacheRepository) ListCredentials(ctx context.Context, filter models.ListFilter) ([]models.CredentialResponse, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listCachedCredentials)
	if err != nil {
		log.Err(err).Str("func", "*localCacheRepository.ListCredentials").Msg("failed to query cache")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	needle := strings.ToLower(filter.ServiceName)

	results := make([]models.CredentialResponse, 0, 20)
	for rows.Next() {
		var credential models.CredentialResponse
		err = rows.Scan(
			&credential.CredentialID,
			&credential.ServiceName,
			&credential.AccountUsername,
			&credential.URL,
			&credential.Notes,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		)
		if err != nil {
			log.Err(err).Str("func", "*localCacheRepository.ListCredentials").Msg("failed to scan cached credential")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if needle != "" && !strings.Contains(strings.ToLower(credential.ServiceName), needle) {
			continue
		}

		results = append(results, credential)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*localCacheRepository.ListCredentials").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// SaveSession upserts the single session row.
func (r *localCacheRepository) SaveSession(ctx context.Context, session models.ClientSession) error {
	log := logger.FromContext(ctx)

	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now()
	}

	if _, err := r.DB.ExecContext(ctx, saveSession, session.UserID, session.Token, session.SavedAt); err != nil {
		log.Err(err).Str("func", "*localCacheRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// LoadSession reads the single session row.
func (r *localCacheRepository) LoadSession(ctx context.Context) (models.ClientSession, error) {
	log := logger.FromContext(ctx)

	var session models.ClientSession
	row := r.DB.QueryRowContext(ctx, loadSession)

	if err := row.Scan(&session.UserID, &session.Token, &session.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ClientSession{}, ErrLocalSessionNotFound
		}

		log.Err(err).Str("func", "*localCacheRepository.LoadSession").Msg("failed to load session")
		return models.ClientSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// ClearSession removes the session row.
func (r *localCacheRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, clearSession); err != nil {
		log.Err(err).Str("func", "*localCacheRepository.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
