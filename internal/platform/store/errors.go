package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when a store key resolves to no document, or a
	// targeted write matched zero documents.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable wraps driver-level failures (connectivity, timeouts) so
	// that callers can surface a uniform store-unavailable condition instead
	// of leaking driver errors.
	ErrUnavailable = errors.New("record store unavailable")
)

// wrap normalizes a driver error: no-rows becomes ErrNotFound, everything
// else is tagged ErrUnavailable with the failing operation.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
