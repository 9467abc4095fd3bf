// Package apperr defines the error kinds surfaced by the service and
// the translation from storage errors to those kinds.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("operation not permitted")
	ErrInactive     = errors.New("account is inactive")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation (username, email,
// sweet name).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports a purchase exceeding the available
// stock, carrying both counts for the caller.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock: %d available, %d requested", e.Available, e.Requested)
}

// InternalError wraps an unexpected storage or collaborator failure;
// the cause is logged, never returned to the client.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string { return "internal error" }
func (e *InternalError) Unwrap() error { return e.Cause }

func Internal(cause error) error {
	return &InternalError{Cause: cause}
}

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// FromDB translates a gorm/postgres error into a service error kind.
// The conflict message is used verbatim when the failure is a
// duplicate key, so callers pass a description of the field in play.
func FromDB(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		(errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation) {
		return Conflict("%s", conflictMsg)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		(errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation) {
		return Validation("value violates a storage constraint")
	}
	return Internal(err)
}
