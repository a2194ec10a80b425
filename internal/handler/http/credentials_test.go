// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/internal/service"
	"github.com/rlozanop/credvault/internal/store"
	"github.com/rlozanop/credvault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock VaultService
// ─────────────────────────────────────────────

type mockVaultService struct {
	createFn func(ctx context.Context, ownerID int64, create models.CredentialCreate) (models.CredentialResponse, error)
	listFn   func(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.CredentialResponse, error)
	getFn    func(ctx context.Context, ownerID int64, credentialID int64) (models.CredentialResponse, error)
	updateFn func(ctx context.Context, ownerID int64, update models.CredentialUpdate) (models.CredentialResponse, error)
	deleteFn func(ctx context.Context, ownerID int64, credentialID int64) error
	revealFn func(ctx context.Context, ownerID int64, credentialID int64, metadata map[string]any) (string, error)
}

func (m *mockVaultService) Create(ctx context.Context, ownerID int64, create models.CredentialCreate) (models.CredentialResponse, error) {
	return m.createFn(ctx, ownerID, create)
}

func (m *mockVaultService) List(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.CredentialResponse, error) {
	return m.listFn(ctx, ownerID, filter)
}

func (m *mockVaultService) Get(ctx context.Context, ownerID int64, credentialID int64) (models.CredentialResponse, error) {
	return m.getFn(ctx, ownerID, credentialID)
}

func (m *mockVaultService) Update(ctx context.Context, ownerID int64, update models.CredentialUpdate) (models.CredentialResponse, error) {
	return m.updateFn(ctx, ownerID, update)
}

func (m *mockVaultService) Delete(ctx context.Context, ownerID int64, credentialID int64) error {
	return m.deleteFn(ctx, ownerID, credentialID)
}

func (m *mockVaultService) Reveal(ctx context.Context, ownerID int64, credentialID int64, metadata map[string]any) (string, error) {
	return m.revealFn(ctx, ownerID, credentialID, metadata)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newRouterWithVault wires the full router with an auth stub that always
// authenticates principal 7, so the credential routes run with their real
// middleware chain and URL parameters.
func newRouterWithVault(t *testing.T, vault service.VaultService) http.Handler {
	t.Helper()

	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
			}, nil
		},
	}
	h := NewHandler(&service.Services{
		AuthService:  auth,
		VaultService: vault,
	}, logger.Nop())

	return h.Init()
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

// ─────────────────────────────────────────────
// create
// ─────────────────────────────────────────────

func TestCreateCredential_Success(t *testing.T) {
	vault := &mockVaultService{
		createFn: func(_ context.Context, ownerID int64, create models.CredentialCreate) (models.CredentialResponse, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, "github", create.ServiceName)
			return models.CredentialResponse{CredentialID: 42, ServiceName: create.ServiceName}, nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPost, "/api/credentials",
		`{"serviceName":"github","accountUsername":"octocat","password":"hunter2"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response models.CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.CredentialID)
}

func TestCreateCredential_InvalidData(t *testing.T) {
	vault := &mockVaultService{
		createFn: func(_ context.Context, _ int64, _ models.CredentialCreate) (models.CredentialResponse, error) {
			return models.CredentialResponse{}, service.ErrInvalidDataProvided
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPost, "/api/credentials", `{"serviceName":"github"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCredential_Unauthenticated(t *testing.T) {
	router := newRouterWithVault(t, &mockVaultService{})

	req := httptest.NewRequest(http.MethodPost, "/api/credentials", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// list
// ─────────────────────────────────────────────

func TestListCredentials_PassesFilter(t *testing.T) {
	vault := &mockVaultService{
		listFn: func(_ context.Context, ownerID int64, filter models.ListFilter) ([]models.CredentialResponse, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, "git", filter.ServiceName)
			return []models.CredentialResponse{{CredentialID: 1}, {CredentialID: 2}}, nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodGet, "/api/credentials?service=git", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var responses []models.CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
}

// ─────────────────────────────────────────────
// get — uniform not-found
// ─────────────────────────────────────────────

// TestGetCredential_UniformNotFound verifies that a record owned by someone
// else and a record that does not exist produce byte-identical responses.
func TestGetCredential_UniformNotFound(t *testing.T) {
	for name, svcErr := range map[string]error{
		"not owner": service.ErrNotOwner,
		"absent":    store.ErrCredentialNotFound,
	} {
		t.Run(name, func(t *testing.T) {
			vault := &mockVaultService{
				getFn: func(_ context.Context, _ int64, _ int64) (models.CredentialResponse, error) {
					return models.CredentialResponse{}, svcErr
				},
			}
			router := newRouterWithVault(t, vault)

			req := authedRequest(http.MethodGet, "/api/credentials/42", "")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "credential not found\n", rec.Body.String())
		})
	}
}

func TestGetCredential_NonNumericID(t *testing.T) {
	called := false
	vault := &mockVaultService{
		getFn: func(_ context.Context, _ int64, _ int64) (models.CredentialResponse, error) {
			called = true
			return models.CredentialResponse{}, nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodGet, "/api/credentials/not-a-number", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, called)
}

// ─────────────────────────────────────────────
// update
// ─────────────────────────────────────────────

// TestUpdateCredential_IdentityComesFromURLAndToken verifies that ids smuggled
// into the request body are ignored.
func TestUpdateCredential_IdentityComesFromURLAndToken(t *testing.T) {
	var received models.CredentialUpdate
	vault := &mockVaultService{
		updateFn: func(_ context.Context, ownerID int64, update models.CredentialUpdate) (models.CredentialResponse, error) {
			assert.Equal(t, int64(7), ownerID)
			received = update
			return models.CredentialResponse{CredentialID: update.CredentialID}, nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPut, "/api/credentials/42",
		`{"id":999,"serviceName":"gitlab"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), received.CredentialID)
	assert.Equal(t, int64(7), received.UserID)
	require.NotNil(t, received.ServiceName)
	assert.Equal(t, "gitlab", *received.ServiceName)
}

func TestUpdateCredential_PatchRoute(t *testing.T) {
	vault := &mockVaultService{
		updateFn: func(_ context.Context, _ int64, update models.CredentialUpdate) (models.CredentialResponse, error) {
			return models.CredentialResponse{CredentialID: update.CredentialID}, nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPatch, "/api/credentials/42", `{"notes":"rotated"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────
// delete
// ─────────────────────────────────────────────

func TestDeleteCredential_Success(t *testing.T) {
	vault := &mockVaultService{
		deleteFn: func(_ context.Context, ownerID int64, credentialID int64) error {
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, int64(42), credentialID)
			return nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodDelete, "/api/credentials/42", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

// ─────────────────────────────────────────────
// reveal
// ─────────────────────────────────────────────

func TestRevealCredential_ReturnsPasswordAndCapturesCallerMetadata(t *testing.T) {
	var metadata map[string]any
	vault := &mockVaultService{
		revealFn: func(_ context.Context, ownerID int64, credentialID int64, md map[string]any) (string, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.Equal(t, int64(42), credentialID)
			metadata = md
			return "hunter2", nil
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPost, "/api/credentials/42/reveal", "")
	req.Header.Set("User-Agent", "credvault-test/1.0")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.RevealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "hunter2", response.Password)

	assert.Equal(t, "203.0.113.9", metadata["ip"])
	assert.Equal(t, "credvault-test/1.0", metadata["ua"])
}

func TestRevealCredential_AuditFailureYieldsGenericError(t *testing.T) {
	vault := &mockVaultService{
		revealFn: func(_ context.Context, _ int64, _ int64, _ map[string]any) (string, error) {
			return "", store.ErrAuditNotRecorded
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPost, "/api/credentials/42/reveal", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "audit")
}

func TestRevealCredential_UniformNotFound(t *testing.T) {
	vault := &mockVaultService{
		revealFn: func(_ context.Context, _ int64, _ int64, _ map[string]any) (string, error) {
			return "", service.ErrNotOwner
		},
	}
	router := newRouterWithVault(t, vault)

	req := authedRequest(http.MethodPost, "/api/credentials/42/reveal", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "credential not found\n", rec.Body.String())
}
