package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed database operation may succeed
// on another attempt. The audit repository uses it to retry its INSERT,
// since a lost audit entry blocks password disclosure.
type ErrorClassification int

const (
	// NonRetryable covers constraint violations, data exceptions, syntax
	// errors and anything unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient conditions: connection loss, deadlock
	// rollback, serialization failure.
	Retryable
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] by inspecting the
// SQLSTATE code of pgx driver errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err as a *pgconn.PgError and maps its code. Anything that
// is not a PostgreSQL driver error is NonRetryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError maps a SQLSTATE code to an [ErrorClassification].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// class 08, connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// class 40, transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	// class 57, operator intervention
	case pgerrcode.CannotConnectNow:
		return Retryable
	}

	// everything else, including class 22 (data exceptions), class 23
	// (integrity constraint violations) and class 42 (syntax or access rule
	// violations), will fail identically on a second attempt
	return NonRetryable
}
