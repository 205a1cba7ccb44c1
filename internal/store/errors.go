package store

import "errors"

// Sentinel errors returned by repository methods. Callers match them with
// [errors.Is]. Ledger-side repositories report missing rows with
// ledger.ErrNotFound instead, so the ledger rules can treat both stores alike.
var (
	// ErrVaultEntryNotFound is returned when no vault entry exists for the
	// requested identity.
	ErrVaultEntryNotFound = errors.New("vault entry not found")

	// ErrVaultEntryNotSaved is returned when an upsert affects no rows.
	ErrVaultEntryNotSaved = errors.New("vault entry was not saved")

	// ErrRequestNotCached is returned when the local cache has no copy of the
	// requested analysis request.
	ErrRequestNotCached = errors.New("analysis request not cached")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails with a
	// non-retryable database error.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
