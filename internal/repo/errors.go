package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrPersonNotFound        = errors.New("person not found")
	ErrReportNotFound        = errors.New("report not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")

	// ErrUpsertConflict signals a retryable race on an atomic upsert.
	ErrUpsertConflict = errors.New("upsert conflict")
)

// DataAccessError wraps an infrastructure failure with the logical name of
// the query that failed. A metrics run that hits one aborts without
// persisting anything.
type DataAccessError struct {
	Query string
	Err   error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed on %q: %v", e.Query, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func dataAccess(query string, err error) error {
	if err == nil {
		return nil
	}
	return &DataAccessError{Query: query, Err: err}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isSerializationFailure reports whether err is a Postgres serialization
// failure (SQLSTATE 40001), the retryable flavor of an upsert race.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
