// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package service

import (
	"context"
	"fmt"

	"github.com/rlozanop/credvault/internal/crypto"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/internal/store"
	"github.com/rlozanop/credvault/models"
)

// vaultService is the concrete implementation of [VaultService]. It is the
// only component that holds the envelope cipher: the repository below it
// stores opaque envelopes and must never receive plaintext, the handlers
// above it receive sanitized metadata or — for Reveal alone — the bare
// secret.
//
// Every operation on an existing record runs the same sequence: locate via
// the repository, authorize via the guard, act, respond. The guard is one
// shared implementation so an omitted ownership check cannot creep in per
// operation.
type vaultService struct {
	credentialRepository store.CredentialRepository
	auditRepository      store.AuditRepository
	guard                AccessGuard
	cipher               *crypto.EnvelopeCipher
	logger               *logger.Logger
}

// NewVaultService constructs a [VaultService] over the given repositories,
// guard, and cipher. The cipher carries the process master key, resolved and
// validated at startup; vaultService itself never touches key material.
func NewVaultService(
	credentialRepository store.CredentialRepository,
	auditRepository store.AuditRepository,
	guard AccessGuard,
	cipher *crypto.EnvelopeCipher,
	logger *logger.Logger,
) VaultService {
	return &vaultService{
		credentialRepository: credentialRepository,
		auditRepository:      auditRepository,
		guard:                guard,
		cipher:               cipher,
		logger:               logger,
	}
}

// locateAndAuthorize is the shared Locate → Authorize prefix of every
// operation addressing one credential.
func (v *vaultService) locateAndAuthorize(ctx context.Context, ownerID, credentialID int64) (models.Credential, error) {
	credential, err := v.credentialRepository.FindByID(ctx, credentialID)
	if err != nil {
		return models.Credential{}, err
	}

	if err := v.guard.Authorize(ownerID, credential); err != nil {
		return models.Credential{}, err
	}

	return credential, nil
}

// Create implements [VaultService]. The password is sealed before anything
// is handed to the repository; the plaintext lives only in the request value.
func (v *vaultService) Create(ctx context.Context, ownerID int64, create models.CredentialCreate) (models.CredentialResponse, error) {
	log := logger.FromContext(ctx)

	if create.ServiceName == "" || create.AccountUsername == "" || create.Password == "" {
		log.Error().Int64("user_id", ownerID).Msg("missing required credential fields")
		return models.CredentialResponse{}, ErrInvalidDataProvided
	}

	envelope, err := v.cipher.Seal([]byte(create.Password))
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("sealing password failed")
		return models.CredentialResponse{}, fmt.Errorf("sealing password failed: %w", err)
	}

	created, err := v.credentialRepository.Create(ctx, models.Credential{
		UserID:           ownerID,
		ServiceName:      create.ServiceName,
		AccountUsername:  []byte(create.AccountUsername),
		PasswordEnvelope: envelope,
		URL:              create.URL,
		Notes:            create.Notes,
	})
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("credential creation ended with error")
		return models.CredentialResponse{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	return created.Sanitized(), nil
}

// List implements [VaultService].
func (v *vaultService) List(ctx context.Context, ownerID int64, filter models.ListFilter) ([]models.CredentialResponse, error) {
	log := logger.FromContext(ctx)

	credentials, err := v.credentialRepository.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("credential listing ended with error")
		return nil, fmt.Errorf("credential listing ended with error: %w", err)
	}

	responses := make([]models.CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		responses = append(responses, credential.Sanitized())
	}

	return responses, nil
}

// Get implements [VaultService].
func (v *vaultService) Get(ctx context.Context, ownerID int64, credentialID int64) (models.CredentialResponse, error) {
	credential, err := v.locateAndAuthorize(ctx, ownerID, credentialID)
	if err != nil {
		return models.CredentialResponse{}, err
	}

	return credential.Sanitized(), nil
}

// Update implements [VaultService]. A provided password is sealed here and
// replaces the stored envelope wholesale; all other provided fields pass
// through untouched. The repository never sees the owner column change.
func (v *vaultService) Update(ctx context.Context, ownerID int64, update models.CredentialUpdate) (models.CredentialResponse, error) {
	log := logger.FromContext(ctx)

	credential, err := v.locateAndAuthorize(ctx, ownerID, update.CredentialID)
	if err != nil {
		return models.CredentialResponse{}, err
	}

	if update.Empty() {
		// Nothing to change; respond with the current state rather than
		// issuing a no-op write.
		return credential.Sanitized(), nil
	}

	if update.Password != nil {
		if *update.Password == "" {
			return models.CredentialResponse{}, ErrInvalidDataProvided
		}

		envelope, sealErr := v.cipher.Seal([]byte(*update.Password))
		if sealErr != nil {
			log.Err(sealErr).Int64("credential_id", update.CredentialID).Msg("sealing replacement password failed")
			return models.CredentialResponse{}, fmt.Errorf("sealing replacement password failed: %w", sealErr)
		}
		update.PasswordEnvelope = &envelope
		update.Password = nil
	}

	updated, err := v.credentialRepository.Update(ctx, update)
	if err != nil {
		log.Err(err).Int64("credential_id", update.CredentialID).Msg("credential update ended with error")
		return models.CredentialResponse{}, fmt.Errorf("credential update ended with error: %w", err)
	}

	return updated.Sanitized(), nil
}

// Delete implements [VaultService].
func (v *vaultService) Delete(ctx context.Context, ownerID int64, credentialID int64) error {
	log := logger.FromContext(ctx)

	if _, err := v.locateAndAuthorize(ctx, ownerID, credentialID); err != nil {
		return err
	}

	if err := v.credentialRepository.Delete(ctx, credentialID); err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("credential deletion ended with error")
		return fmt.Errorf("credential deletion ended with error: %w", err)
	}

	return nil
}

// Reveal implements [VaultService]. Disclosure and its audit record are
// atomic from the caller's perspective: the envelope is opened first (a
// failed open means nothing was disclosed, so nothing is audited), then the
// audit entry is written durably, and only then does the plaintext leave
// this method. An audit failure aborts the reveal — the vault never
// discloses without a trail.
//
// A decryption failure is surfaced distinctly, never swallowed: it means bad
// data (key rotation without re-encryption, or corruption), not a bad
// request, and operators need to tell those apart.
func (v *vaultService) Reveal(ctx context.Context, ownerID int64, credentialID int64, metadata map[string]any) (string, error) {
	log := logger.FromContext(ctx)

	credential, err := v.locateAndAuthorize(ctx, ownerID, credentialID)
	if err != nil {
		return "", err
	}

	plaintext, err := v.cipher.Open(credential.PasswordEnvelope)
	if err != nil {
		log.Err(err).
			Int64("credential_id", credentialID).
			Msg("opening stored envelope failed")
		return "", fmt.Errorf("opening stored envelope failed: %w", err)
	}

	if _, err := v.auditRepository.Record(ctx, models.AuditEntry{
		UserID:       ownerID,
		CredentialID: credentialID,
		Action:       models.AuditActionShowPassword,
		Metadata:     metadata,
	}); err != nil {
		log.Err(err).
			Int64("credential_id", credentialID).
			Msg("audit write failed, refusing to disclose")
		return "", fmt.Errorf("audit write failed: %w", err)
	}

	return string(plaintext), nil
}
