package service

import (
	"fmt"

	"github.com/rlozanop/credvault/internal/config"
	"github.com/rlozanop/credvault/internal/crypto"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/internal/store"
)

type Services struct {
	AuthService  AuthService
	VaultService VaultService
}

// NewServices wires the service layer. The master key is resolved here, once,
// into the envelope cipher; no other component ever sees key material.
func NewServices(storages store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	masterKey, err := crypto.ResolveMasterKey(cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("resolving master key: %w", err)
	}

	cipher, err := crypto.NewEnvelopeCipher(masterKey)
	if err != nil {
		return nil, fmt.Errorf("initializing envelope cipher: %w", err)
	}

	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, logger),
		VaultService: NewVaultService(
			storages.CredentialRepository,
			storages.AuditRepository,
			NewOwnerGuard(logger),
			cipher,
			logger,
		),
	}, nil
}
