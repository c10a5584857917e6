// Package command contains the write-side intents and their handlers.
package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/mkostin/catalog_service/internal/catalog/store"
	"github.com/shopspring/decimal"
)

// CreateProduct requests creation of a new product.
type CreateProduct struct {
	Name  string
	Price decimal.Decimal
}

func (CreateProduct) IntentName() string { return "product.create" }

// CreateHandler executes CreateProduct. The identifier is generated here, not
// by storage.
type CreateHandler struct {
	store store.ProductStore
}

func NewCreateHandler(s store.ProductStore) *CreateHandler {
	return &CreateHandler{store: s}
}

// Handle validates the input through the entity constructor, assigns a fresh
// random identifier and persists the product.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateProduct) (*domain.Product, error) {
	product, err := domain.New(uuid.New(), cmd.Name, cmd.Price)
	if err != nil {
		return nil, err
	}
	return h.store.Create(ctx, product)
}
