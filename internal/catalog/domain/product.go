// Package domain contains the product entity and its invariants.
package domain

import (
	"strings"

	"github.com/google/uuid"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
	"github.com/shopspring/decimal"
)

// maxPriceScale is the maximum number of decimal places a price may carry.
const maxPriceScale = 4

// Product is the catalog entity. Instances returned by the store are detached
// copies; mutating one never affects the durable record until it is written back.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

// New constructs a product with the given identity. The name is trimmed and must
// not be empty, the price must be non-negative with at most four decimal places.
// New products are always available.
func New(id uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, catalogerrors.NewValidationError("product name must not be empty")
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Available: true,
	}, nil
}

// UpdateDetails applies the supplied fields in place. Nil fields are left
// untouched. Validation runs before any mutation, so a failed update leaves the
// product unchanged.
func (p *Product) UpdateDetails(name *string, price *decimal.Decimal) error {
	var trimmed string
	if name != nil {
		trimmed = strings.TrimSpace(*name)
		if trimmed == "" {
			return catalogerrors.NewValidationError("product name must not be empty")
		}
	}
	if price != nil {
		if err := validatePrice(*price); err != nil {
			return err
		}
	}
	if name != nil {
		p.Name = trimmed
	}
	if price != nil {
		p.Price = *price
	}
	return nil
}

// MarkUnavailable flips the availability flag. The transition is one-way; the
// handler layer rejects deletes of already-unavailable products.
func (p *Product) MarkUnavailable() {
	p.Available = false
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return catalogerrors.NewValidationError("product price must not be negative, got %s", price)
	}
	if price.Exponent() < -maxPriceScale {
		return catalogerrors.NewValidationError("product price must have at most %d decimal places, got %s", maxPriceScale, price)
	}
	return nil
}
