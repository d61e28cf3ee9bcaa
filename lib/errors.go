package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Domain invariant errors. Handlers map these onto the response envelope;
// services never translate them to HTTP concerns themselves.
var (
	ErrDuplicateSize     = errors.New("duplicate size variant")
	ErrCapacityExceeded  = errors.New("image capacity exceeded")
	ErrEmptyVariantList  = errors.New("at least one size variant is required")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrOrderItemNotFound = errors.New("item not found in order")
)

// InvariantError carries a human-readable description of a rejected input
// (bad size, negative price, invalid category...).
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func NewInvariantError(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is any of the domain validation failures,
// as opposed to a storage or infrastructure error.
func IsInvariant(err error) bool {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return true
	}
	return errors.Is(err, ErrDuplicateSize) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrEmptyVariantList) ||
		errors.Is(err, ErrEmptyOrder)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrOrderItemNotFound)
}

func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
