package store

import (
	"context"
	"fmt"

	"github.com/rlozanop/credvault/internal/config"
	"github.com/rlozanop/credvault/internal/logger"
)

// ClientStorages groups the client-side storage repositories into a single
// value that can be passed around the terminal client. Currently it holds
// only [LocalCacheRepository].
type ClientStorages struct {
	// CacheRepository is the SQLite-backed cache of sanitized credential
	// metadata and the persisted login session.
	CacheRepository LocalCacheRepository
}

// NewClientStorages initialises the client storage layer: it opens (and on
// first use creates) the SQLite cache file named in cfg.CacheFile, applies
// the cache schema, and wires a fresh [LocalCacheRepository].
func NewClientStorages(cfg config.Client, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		CacheRepository: NewLocalCacheRepository(db, logger),
	}, nil
}
