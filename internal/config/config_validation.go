// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package config

import (
	"errors"
	"fmt"

	"github.com/rlozanop/credvault/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills in defaults
// for fields every deployment is allowed to omit.
//
// The master key is resolved here rather than at first use: a vault with an
// invalid key must refuse to start instead of failing on the first seal.
// The error text never includes the configured key value.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if _, err := crypto.ResolveMasterKey(cfg.App.MasterKey); err != nil {
		errs = append(errs, fmt.Errorf("APP_MASTER_KEY: %w", err))
	}

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, errNoTokenSignKey)
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, errNoDatabaseDSN)
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultTimeout
	}

	return errors.Join(errs...)
}
