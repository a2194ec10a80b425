// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package service

import (
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/models"
)

// ownerGuard is the single [AccessGuard] implementation: a principal may
// read, reveal, update, or delete a credential if and only if they own it.
// There is no role hierarchy, no delegation, and no shared credentials.
type ownerGuard struct {
	logger *logger.Logger
}

// NewOwnerGuard constructs the ownership-based [AccessGuard].
func NewOwnerGuard(logger *logger.Logger) AccessGuard {
	return &ownerGuard{logger: logger}
}

// Authorize implements [AccessGuard]. A denial is logged with both ids —
// cross-owner probing is worth noticing in logs even though the caller only
// ever sees a generic response.
func (g *ownerGuard) Authorize(principalID int64, credential models.Credential) error {
	if credential.UserID != principalID {
		g.logger.Warn().
			Int64("principal_id", principalID).
			Int64("owner_id", credential.UserID).
			Int64("credential_id", credential.CredentialID).
			Msg("access denied: principal is not the owner")
		return ErrNotOwner
	}

	return nil
}
