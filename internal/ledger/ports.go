// Package ledger defines the store port every backend implements, the
// 5-column wire format shared by all of them, and the error taxonomy the
// service layer maps onto HTTP responses.
package ledger

import (
	"context"
	"errors"

	"homeledger/internal/core"
)

type (
	// Store is the durable, ordered list of expense records. Order is
	// storage order; indexes are zero-based positions in that order.
	// Every mutation persists before returning, and Load always re-fetches
	// from the backing store: no in-memory copy is authoritative.
	Store interface {
		Load(ctx context.Context) ([]core.Record, error)
		Append(ctx context.Context, r core.Record) error
		Update(ctx context.Context, index int, r core.Record) error
		Delete(ctx context.Context, index int) error
	}

	// Archiver is implemented by stores that support the snapshot-and-reset
	// operation: move the current ledger aside under a month-stamped name
	// and start fresh.
	Archiver interface {
		Archive(ctx context.Context) (string, error)
	}
)

var (
	// ErrValidation marks a write rejected because amount, date or category
	// could not be coerced. Nothing is committed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an update or delete addressing a record that no
	// longer exists.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable marks a backend that cannot be reached or refuses
	// access. It is distinct from a truly empty ledger (absent file, empty
	// sheet), which loads as zero records without error.
	ErrUnavailable = errors.New("ledger store unavailable")

	// ErrNothingToArchive is returned when archiving an empty ledger.
	ErrNothingToArchive = errors.New("nothing to archive")
)

// Validate coerces and checks a record before commit, wrapping any domain
// error in ErrValidation so callers can classify it with errors.Is.
func Validate(r core.Record) error {
	if err := r.Validate(); err != nil {
		return errors.Join(ErrValidation, err)
	}
	return nil
}
