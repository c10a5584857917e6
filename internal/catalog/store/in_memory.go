package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
)

// inMemory implements ProductStore with a mutex-guarded map. It satisfies the
// same contract as PgStore, including the atomic count+fetch of
// FindAllAvailable, and backs the handler and transport tests.
type inMemory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	order    []uuid.UUID // insertion order, the stable pagination order
}

// NewInMemoryStore creates an empty in-memory ProductStore.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (s *inMemory) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return nil, &catalogerrors.StorageError{Op: "create", Err: fmt.Errorf("duplicate product ID %s", product.ID)}
	}
	s.products[product.ID] = *product
	s.order = append(s.order, product.ID)

	copied := *product
	return &copied, nil
}

func (s *inMemory) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok || !product.Available {
		return nil, catalogerrors.ErrProductNotFound
	}
	return &product, nil
}

func (s *inMemory) FindAllAvailable(_ context.Context, page, limit int32) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		if product := s.products[id]; product.Available {
			available = append(available, product)
		}
	}

	skip := int((page - 1) * limit)
	end := skip + int(limit)
	var data []domain.Product
	switch {
	case skip >= len(available):
		data = []domain.Product{}
	case end > len(available):
		data = available[skip:]
	default:
		data = available[skip:end]
	}

	return &domain.Page{
		Data: data,
		Meta: domain.NewPageMeta(int64(len(available)), page, limit),
	}, nil
}

func (s *inMemory) Update(_ context.Context, id uuid.UUID, fields UpdateFields) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok || !product.Available {
		return nil, catalogerrors.ErrProductNotFound
	}
	if fields.Empty() {
		return &product, nil
	}
	if err := product.UpdateDetails(fields.Name, fields.Price); err != nil {
		return nil, err
	}
	s.products[id] = product
	return &product, nil
}

func (s *inMemory) SoftDelete(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok || !product.Available {
		return nil, catalogerrors.ErrProductNotFound
	}
	product.MarkUnavailable()
	s.products[id] = product
	return &product, nil
}

func (s *inMemory) FindAvailableByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	distinct := DedupeIDs(ids)
	if len(distinct) == 0 {
		return []domain.Product{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]domain.Product, 0, len(distinct))
	for _, id := range distinct {
		if product, ok := s.products[id]; ok && product.Available {
			found = append(found, product)
		}
	}
	return found, nil
}
