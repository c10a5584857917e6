package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/mkostin/catalog_service/internal/catalog/store"
	"github.com/shopspring/decimal"
)

// UpdateProduct requests a partial update. Nil fields are left untouched.
type UpdateProduct struct {
	ID    uuid.UUID
	Name  *string
	Price *decimal.Decimal
}

func (UpdateProduct) IntentName() string { return "product.update" }

// UpdateHandler executes UpdateProduct.
type UpdateHandler struct {
	store store.ProductStore
}

func NewUpdateHandler(s store.ProductStore) *UpdateHandler {
	return &UpdateHandler{store: s}
}

// Handle confirms the product exists, validates the changes against the entity
// invariants and writes only the supplied fields. A delete racing between the
// existence check and the write still surfaces as ErrProductNotFound from the
// store; both layers defend the same invariant.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateProduct) (*domain.Product, error) {
	product, err := h.store.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(cmd.Name, cmd.Price); err != nil {
		return nil, err
	}
	// Write the entity's view of the changes so the stored name is the trimmed one.
	fields := store.UpdateFields{}
	if cmd.Name != nil {
		fields.Name = &product.Name
	}
	if cmd.Price != nil {
		fields.Price = &product.Price
	}
	return h.store.Update(ctx, cmd.ID, fields)
}
