// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

// Package adapter provides transport-layer abstractions for communicating with
// the credvault server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// client from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/rlozanop/credvault/models"
)

// ServerAdapter defines transport-agnostic communication with the credvault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided email and
	// password. On success it stores the returned bearer token via SetToken
	// and returns the authenticated token value.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns the token value.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// CreateCredential stores a new credential on the server and returns its
	// sanitized representation.
	CreateCredential(ctx context.Context, create models.CredentialCreate) (models.CredentialResponse, error)

	// ListCredentials fetches the caller's credentials, newest update first,
	// optionally narrowed by a service-name substring.
	ListCredentials(ctx context.Context, filter models.ListFilter) ([]models.CredentialResponse, error)

	// GetCredential fetches one credential's sanitized metadata.
	GetCredential(ctx context.Context, credentialID int64) (models.CredentialResponse, error)

	// UpdateCredential applies a partial update and returns the refreshed
	// sanitized record.
	UpdateCredential(ctx context.Context, credentialID int64, update models.CredentialUpdate) (models.CredentialResponse, error)

	// DeleteCredential removes one credential.
	DeleteCredential(ctx context.Context, credentialID int64) error

	// RevealCredential asks the server to disclose one stored password. The
	// disclosure is audited server-side; the plaintext exists only in the
	// returned value.
	RevealCredential(ctx context.Context, credentialID int64) (string, error)
}
