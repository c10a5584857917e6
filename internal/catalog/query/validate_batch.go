package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
	"github.com/mkostin/catalog_service/internal/catalog/store"
)

// ValidateProducts checks that every given ID refers to an available product.
type ValidateProducts struct {
	IDs []uuid.UUID
}

func (ValidateProducts) IntentName() string { return "product.validate" }

// ValidateBatchHandler resolves ValidateProducts with all-or-nothing semantics:
// either every deduplicated ID matches an available product, or the whole batch
// fails listing exactly the missing IDs.
type ValidateBatchHandler struct {
	store store.ProductStore
}

func NewValidateBatchHandler(s store.ProductStore) *ValidateBatchHandler {
	return &ValidateBatchHandler{store: s}
}

// Handle returns the matched products in no guaranteed order. An empty input
// is not an error and returns an empty slice without touching storage.
func (h *ValidateBatchHandler) Handle(ctx context.Context, q ValidateProducts) ([]domain.Product, error) {
	distinct := store.DedupeIDs(q.IDs)
	if len(distinct) == 0 {
		return []domain.Product{}, nil
	}

	found, err := h.store.FindAvailableByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(found) == len(distinct) {
		return found, nil
	}

	matched := make(map[uuid.UUID]struct{}, len(found))
	for _, product := range found {
		matched[product.ID] = struct{}{}
	}
	missing := make([]uuid.UUID, 0, len(distinct)-len(found))
	for _, id := range distinct {
		if _, ok := matched[id]; !ok {
			missing = append(missing, id)
		}
	}
	return nil, &catalogerrors.ValidationError{
		Reason:     "products not found or unavailable",
		MissingIDs: missing,
	}
}
