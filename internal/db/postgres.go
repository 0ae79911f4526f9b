package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUnavailable marks a data-store failure. Handlers map it to 503 so
// store outages are never reported as auth or validation outcomes.
var ErrUnavailable = errors.New("storage unavailable")

// uniqueViolation is the Postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

// Open opens a Postgres connection using the given DSN. Caller must call Close when done.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Uniqueness races (e.g. two concurrent registrations with the
// same email) are settled by the constraint, not by check-then-act in
// application code; services use this to map the loser to a conflict error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// StoreError classifies err as a store failure by wrapping it with
// ErrUnavailable. nil passes through, as do unique violations, which are a
// data outcome rather than an outage and keep their own mapping.
func StoreError(err error) error {
	if err == nil || IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
