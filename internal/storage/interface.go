// Package storage defines the record-store contract shared by the
// memory, sqlite and postgres implementations, plus the in-memory
// implementation used as the default backend and as a test double.
package storage

import (
	"context"
	"errors"

	"github.com/jmoralesv/vin-tracker/internal/models"
)

// ErrNotFound is returned when no record matches the given id or VIN.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update would leave two
// non-deleted records holding the same VIN in one collection. It is the
// backstop for the benign check-then-insert race in add.
var ErrConflict = errors.New("vin conflict")

// Store is the record store: two independent collections of VIN records,
// addressed by the collection argument ("delivery" or "service").
// Soft-deleted records are invisible to FindByVIN, List and the bulk
// operations; they reappear only through ListDeleted and Restore.
type Store interface {
	// Insert creates a new record with registered=false and
	// repeat_count=0. char_count is recomputed from the VIN, never
	// trusted from the caller.
	Insert(ctx context.Context, collection, vin string) (*models.VinRecord, error)

	FindByID(ctx context.Context, collection string, id int64) (*models.VinRecord, error)

	// FindByVIN looks up the non-deleted record holding vin.
	FindByVIN(ctx context.Context, collection, vin string) (*models.VinRecord, error)

	// UpdateVIN replaces the VIN text of an existing record, recomputing
	// char_count. Returns ErrConflict when another non-deleted record
	// already holds the new value.
	UpdateVIN(ctx context.Context, collection string, id int64, vin string) (*models.VinRecord, error)

	// SetRegistered flips the registered flag of one record.
	SetRegistered(ctx context.Context, collection string, id int64, registered bool) (*models.VinRecord, error)

	// MarkRepeated increments repeat_count, resets registered to false
	// and stamps last_repeated_at.
	MarkRepeated(ctx context.Context, collection string, id int64) (*models.VinRecord, error)

	SoftDelete(ctx context.Context, collection string, id int64) error
	Restore(ctx context.Context, collection string, id int64) error

	// List returns non-deleted records matching the filter, ordered by id.
	List(ctx context.Context, collection string, filter models.Filter) ([]models.VinRecord, error)

	// ListDeleted returns the soft-deleted records, ordered by id.
	ListDeleted(ctx context.Context, collection string) ([]models.VinRecord, error)

	// RegisterAll sets registered on every filtered record whose flag
	// differs, returning the affected count. All-or-nothing per collection.
	RegisterAll(ctx context.Context, collection string, registered bool, filter models.Filter) (int64, error)

	// DeleteAll soft-deletes every filtered record, returning the count.
	DeleteAll(ctx context.Context, collection string, filter models.Filter) (int64, error)

	RestoreAll(ctx context.Context, collection string) (int64, error)

	// EmptyTrash hard-deletes every soft-deleted record. Irreversible.
	EmptyTrash(ctx context.Context, collection string) (int64, error)

	// Duplicates reports VINs held by more than one non-deleted record.
	Duplicates(ctx context.Context, collection string) ([]models.Duplicate, error)

	PingContext(ctx context.Context) error
}
