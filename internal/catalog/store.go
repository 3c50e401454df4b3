package catalog

import (
	"context"

	dErrors "axisd/pkg/domain-errors"
)

// Store persists catalog records keyed by coordinate hash. Save is an upsert:
// an existing record keeps its CreatedAt and gets a fresh UpdatedAt.
// Implementations live in the store and cache subpackages.
type Store interface {
	Save(ctx context.Context, record Record) (Record, error)
	Get(ctx context.Context, hash string) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Delete(ctx context.Context, hash string) error
	Count(ctx context.Context) (int, error)
}

// ErrNotFound is returned by Get and Delete when no record has the hash.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "coordinate not found")
