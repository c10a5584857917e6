package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
	"github.com/mkostin/catalog_service/internal/catalog/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore fails every operation with a fixed error. Used to verify
// that handlers propagate storage failures unchanged.
type mockProductStore struct {
	err error
}

func (m *mockProductStore) Create(_ context.Context, _ *domain.Product) (*domain.Product, error) {
	return nil, m.err
}

func (m *mockProductStore) FindByID(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
	return nil, m.err
}

func (m *mockProductStore) FindAllAvailable(_ context.Context, _, _ int32) (*domain.Page, error) {
	return nil, m.err
}

func (m *mockProductStore) Update(_ context.Context, _ uuid.UUID, _ store.UpdateFields) (*domain.Product, error) {
	return nil, m.err
}

func (m *mockProductStore) SoftDelete(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
	return nil, m.err
}

func (m *mockProductStore) FindAvailableByIDs(_ context.Context, _ []uuid.UUID) ([]domain.Product, error) {
	return nil, m.err
}

func seedProduct(t *testing.T, s store.ProductStore, name string) *domain.Product {
	t.Helper()
	product, err := domain.New(uuid.New(), name, decimal.NewFromInt(10))
	require.NoError(t, err)
	created, err := s.Create(context.Background(), product)
	require.NoError(t, err)
	return created
}

func Test_FindOneHandler(t *testing.T) {
	t.Run("Success - product found", func(t *testing.T) {
		// given
		s := store.NewInMemoryStore()
		created := seedProduct(t, s, "Toy")
		handler := NewFindOneHandler(s)

		// when
		found, err := handler.Handle(context.Background(), FindOneProduct{ID: created.ID})

		// then
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("Error - unknown ID", func(t *testing.T) {
		// given
		handler := NewFindOneHandler(store.NewInMemoryStore())

		// when
		_, err := handler.Handle(context.Background(), FindOneProduct{ID: uuid.New()})

		// then
		require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	})
}

func Test_FindAllHandler(t *testing.T) {
	testCases := []struct {
		name         string
		query        FindAllProducts
		seeded       int
		expectedRows int
		expectedMeta domain.PageMeta
	}{
		{
			name:         "defaults applied when unset",
			query:        FindAllProducts{},
			seeded:       12,
			expectedRows: 10,
			expectedMeta: domain.PageMeta{Total: 12, Page: 1, LastPage: 2},
		},
		{
			name:         "explicit page and limit",
			query:        FindAllProducts{Page: 2, Limit: 5},
			seeded:       12,
			expectedRows: 5,
			expectedMeta: domain.PageMeta{Total: 12, Page: 2, LastPage: 3},
		},
		{
			name:         "page beyond last",
			query:        FindAllProducts{Page: 9, Limit: 5},
			seeded:       12,
			expectedRows: 0,
			expectedMeta: domain.PageMeta{Total: 12, Page: 9, LastPage: 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := store.NewInMemoryStore()
			for i := 0; i < tc.seeded; i++ {
				seedProduct(t, s, "Toy")
			}
			handler := NewFindAllHandler(s)

			// when
			page, err := handler.Handle(context.Background(), tc.query)

			// then
			require.NoError(t, err)
			assert.Len(t, page.Data, tc.expectedRows)
			assert.Equal(t, tc.expectedMeta, page.Meta)
		})
	}
}

func Test_ValidateBatchHandler(t *testing.T) {
	t.Run("Success - all IDs available", func(t *testing.T) {
		// given
		s := store.NewInMemoryStore()
		a := seedProduct(t, s, "A")
		b := seedProduct(t, s, "B")
		handler := NewValidateBatchHandler(s)

		// when
		found, err := handler.Handle(context.Background(), ValidateProducts{IDs: []uuid.UUID{a.ID, b.ID}})

		// then
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("Success - duplicate IDs count once", func(t *testing.T) {
		// given
		s := store.NewInMemoryStore()
		a := seedProduct(t, s, "A")
		handler := NewValidateBatchHandler(s)

		// when
		found, err := handler.Handle(context.Background(), ValidateProducts{IDs: []uuid.UUID{a.ID, a.ID, a.ID}})

		// then
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("Success - empty input returns empty slice", func(t *testing.T) {
		// given
		handler := NewValidateBatchHandler(&mockProductStore{err: errors.New("store must not be queried")})

		// when
		found, err := handler.Handle(context.Background(), ValidateProducts{})

		// then
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Error - lists exactly the missing IDs", func(t *testing.T) {
		// given
		s := store.NewInMemoryStore()
		a := seedProduct(t, s, "A")
		b := seedProduct(t, s, "B")
		c := seedProduct(t, s, "C")
		_, err := s.SoftDelete(context.Background(), c.ID)
		require.NoError(t, err)
		handler := NewValidateBatchHandler(s)

		// when
		_, err = handler.Handle(context.Background(), ValidateProducts{IDs: []uuid.UUID{a.ID, b.ID, c.ID}})

		// then
		var vErr *catalogerrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []uuid.UUID{c.ID}, vErr.MissingIDs)
	})

	t.Run("Error - store failure propagates", func(t *testing.T) {
		// given
		storeErr := &catalogerrors.StorageError{Op: "findAvailableByIDs", Err: errors.New("boom")}
		handler := NewValidateBatchHandler(&mockProductStore{err: storeErr})

		// when
		_, err := handler.Handle(context.Background(), ValidateProducts{IDs: []uuid.UUID{uuid.New()}})

		// then
		require.ErrorIs(t, err, storeErr)
	})
}
