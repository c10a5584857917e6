// Package query contains the read-side intents and their handlers.
package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/mkostin/catalog_service/internal/catalog/store"
)

// FindOneProduct asks for a single available product by ID.
type FindOneProduct struct {
	ID uuid.UUID
}

func (FindOneProduct) IntentName() string { return "product.find_one" }

// FindOneHandler resolves FindOneProduct against the store.
type FindOneHandler struct {
	store store.ProductStore
}

func NewFindOneHandler(s store.ProductStore) *FindOneHandler {
	return &FindOneHandler{store: s}
}

// Handle returns the product or ErrProductNotFound when it is missing or
// unavailable.
func (h *FindOneHandler) Handle(ctx context.Context, q FindOneProduct) (*domain.Product, error) {
	return h.store.FindByID(ctx, q.ID)
}
