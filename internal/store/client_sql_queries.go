// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package store

const (
	// The cache stores sanitized metadata only. Envelopes and plaintext
	// passwords never reach the client database; reveal always round-trips
	// to the server so it is always audited.
	createCacheSchema = `
		CREATE TABLE IF NOT EXISTS credentials_cache (
			credential_id    INTEGER PRIMARY KEY,
			service_name     TEXT NOT NULL,
			account_username TEXT NOT NULL,
			url              TEXT NOT NULL DEFAULT '',
			notes            TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMP NOT NULL,
			updated_at       TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS session (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			user_id  INTEGER NOT NULL,
			token    TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		);`

	clearCachedCredentials = `DELETE FROM credentials_cache;`

	insertCachedCredential = `
		INSERT INTO credentials_cache (
			credential_id,
			service_name,
			account_username,
			url,
			notes,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	listCachedCredentials = `
		SELECT
			credential_id,
			service_name,
			account_username,
			url,
			notes,
			created_at,
			updated_at
		FROM credentials_cache
		ORDER BY updated_at DESC;`

	saveSession = `
		INSERT INTO session (id, user_id, token, saved_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			user_id  = excluded.user_id,
			token    = excluded.token,
			saved_at = excluded.saved_at;`

	loadSession = `
		SELECT user_id, token, saved_at
		FROM session
		WHERE id = 1;`

	clearSession = `DELETE FROM session;`
)
