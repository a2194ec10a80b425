package store

import (
	"context"
	"fmt"

	"github.com/rlozanop/credvault/internal/config"
	"github.com/rlozanop/credvault/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository       UserRepository
	CredentialRepository CredentialRepository
	AuditRepository      AuditRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		CredentialRepository: NewCredentialRepository(db, log),
		AuditRepository:      NewAuditRepository(db, log),
	}, nil
}
