// Package store provides the persistence port for catalog products.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// UpdateFields carries the partial changes for an update. Nil fields are not
// written.
type UpdateFields struct {
	Name  *string
	Price *decimal.Decimal
}

// Empty reports whether no field is supplied.
func (f UpdateFields) Empty() bool {
	return f.Name == nil && f.Price == nil
}

// ProductStore is the persistence contract consumed by all handlers. It
// abstracts the underlying data store, allowing for different implementations
// (PostgreSQL in production, in-memory in tests).
type ProductStore interface {
	// Create persists a new available product under the externally supplied ID.
	// An identifier collision surfaces as a StorageError, never a silent
	// overwrite.
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// FindByID retrieves a product only if it is available. A missing and an
	// unavailable product both return ErrProductNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// FindAllAvailable returns one page of available products plus metadata.
	// The row count and the page rows are read atomically with respect to each
	// other, and rows are ordered by primary key so pagination is stable across
	// calls absent mutation.
	FindAllAvailable(ctx context.Context, page, limit int32) (*domain.Page, error)

	// Update applies only the supplied fields to an available product and
	// returns the stored state. With no fields supplied it returns the current
	// state without a write. Returns ErrProductNotFound if no available record
	// exists.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*domain.Product, error)

	// SoftDelete marks an available product unavailable and returns the updated
	// record. Returns ErrProductNotFound if no available record exists.
	SoftDelete(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// FindAvailableByIDs returns the available products among the given IDs,
	// deduplicated before querying. Unmatched or unavailable IDs are omitted,
	// never reported as errors. Empty input returns an empty slice without
	// touching storage.
	FindAvailableByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
}

// DedupeIDs returns the distinct IDs in first-seen order.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
