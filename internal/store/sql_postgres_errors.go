package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
)

// ErrorClassification tells whether a failed database operation may succeed
// if attempted again.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient failures: lost connections, serialization
	// failures, deadlocks, a server that is starting or shutting down.
	Retryable
)

// ErrorClassificator decides whether an error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier classifies pgx errors by SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that never reached the
// server (bad connection, context deadline) are retryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) || pgconn.SafeToRetry(err) {
		return Retryable
	}

	return NonRetryable
}

// ClassifyPgError maps a SQLSTATE to a classification.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Retryable codes:
//   - Class 08: connection exceptions
//   - Class 40: transaction rollback, serialization failure, deadlock
//   - Class 57: admin shutdown, cannot connect now
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection:
		return Retryable

	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable:
		return Retryable

	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// wrapDBError turns a driver error into something the ledger layer
// understands: transient failures become ledger.ErrLedgerUnavailable, the
// rest keep their cause behind ErrExecutingQuery.
func (db *DB) wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	classifier := db.errorClassificator
	if classifier == nil {
		classifier = NewPostgresErrorClassifier()
	}
	if classifier.Classify(err) == Retryable {
		return fmt.Errorf("%s: %w: %w", op, ledger.ErrLedgerUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrExecutingQuery, err)
}
