package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user or email address with
	// the same email (case-insensitively) already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user was not found")

	// ErrProfileNotFound is returned when the user has no profile row.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrEmailAddressNotFound is returned when no email address row matches.
	ErrEmailAddressNotFound = errors.New("email address was not found")

	// ErrRecordNotFound is returned when a catalog row does not exist or is
	// not owned by the caller.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrTaskLeaseLost is returned when a worker reports on a task whose
	// claim has expired and was taken over by another worker.
	ErrTaskLeaseLost = errors.New("task lease lost")

	// ErrInvalidReference is returned when a foreign key points nowhere.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrInvalidValue is returned when the database rejects a value.
	ErrInvalidValue = errors.New("invalid value")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
