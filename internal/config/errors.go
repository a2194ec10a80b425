package config

import "errors"

var (
	// errNoTokenSignKey is reported at startup when no JWT signing key was
	// configured through any source.
	errNoTokenSignKey = errors.New("token sign key is required")

	// errNoDatabaseDSN is reported at startup when no database connection
	// string was configured through any source.
	errNoDatabaseDSN = errors.New("database DSN is required")
)
