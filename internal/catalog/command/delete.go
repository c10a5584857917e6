package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/mkostin/catalog_service/internal/catalog/store"
)

// DeleteProduct requests a soft-delete.
type DeleteProduct struct {
	ID uuid.UUID
}

func (DeleteProduct) IntentName() string { return "product.delete" }

// DeleteHandler executes DeleteProduct. Deletion is a state transition, not
// removal; the record stays in storage with available = false.
type DeleteHandler struct {
	store store.ProductStore
}

func NewDeleteHandler(s store.ProductStore) *DeleteHandler {
	return &DeleteHandler{store: s}
}

// Handle confirms the product is still available and marks it unavailable.
// Deleting an already-deleted product fails with ErrProductNotFound, never
// silently succeeds.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteProduct) (*domain.Product, error) {
	if _, err := h.store.FindByID(ctx, cmd.ID); err != nil {
		return nil, err
	}
	return h.store.SoftDelete(ctx, cmd.ID)
}
