package query

import (
	"context"

	"github.com/mkostin/catalog_service/internal/catalog/domain"
	"github.com/mkostin/catalog_service/internal/catalog/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// FindAllProducts asks for one page of available products. Zero values for
// Page or Limit select the defaults.
type FindAllProducts struct {
	Page  int32
	Limit int32
}

func (FindAllProducts) IntentName() string { return "product.find_all" }

// FindAllHandler resolves FindAllProducts against the store.
type FindAllHandler struct {
	store store.ProductStore
}

func NewFindAllHandler(s store.ProductStore) *FindAllHandler {
	return &FindAllHandler{store: s}
}

// Handle returns the requested page, defaulting to page 1 with 10 rows when
// the caller left them unset.
func (h *FindAllHandler) Handle(ctx context.Context, q FindAllProducts) (*domain.Page, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return h.store.FindAllAvailable(ctx, page, limit)
}
