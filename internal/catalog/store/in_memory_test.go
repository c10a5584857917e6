package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name string, price string) *domain.Product {
	t.Helper()
	product, err := domain.New(uuid.New(), name, decimal.RequireFromString(price))
	require.NoError(t, err)
	return product
}

func seed(t *testing.T, s ProductStore, count int) []domain.Product {
	t.Helper()
	seeded := make([]domain.Product, 0, count)
	for i := 0; i < count; i++ {
		created, err := s.Create(context.Background(), mustProduct(t, "Toy", "10"))
		require.NoError(t, err)
		seeded = append(seeded, *created)
	}
	return seeded
}

func Test_InMemory_Create(t *testing.T) {
	// given
	s := NewInMemoryStore()
	product := mustProduct(t, "Toy", "19.99")

	// when
	created, err := s.Create(context.Background(), product)

	// then
	require.NoError(t, err)
	assert.Equal(t, product.ID, created.ID)
	assert.True(t, created.Available)

	found, err := s.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func Test_InMemory_Create_DuplicateID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	product := mustProduct(t, "Toy", "10")
	_, err := s.Create(context.Background(), product)
	require.NoError(t, err)

	// when
	_, err = s.Create(context.Background(), product)

	// then
	var sErr *catalogerrors.StorageError
	require.ErrorAs(t, err, &sErr)
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.FindByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_InMemory_FindByID_Unavailable(t *testing.T) {
	// given
	s := NewInMemoryStore()
	created := seed(t, s, 1)[0]
	_, err := s.SoftDelete(context.Background(), created.ID)
	require.NoError(t, err)

	// when
	_, err = s.FindByID(context.Background(), created.ID)

	// then: unavailable is indistinguishable from nonexistent
	require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_InMemory_FindAllAvailable(t *testing.T) {
	testCases := []struct {
		name         string
		seeded       int
		deleted      int
		page         int32
		limit        int32
		expectedRows int
		expectedMeta domain.PageMeta
	}{
		{
			name:         "first page of two",
			seeded:       3,
			page:         1,
			limit:        2,
			expectedRows: 2,
			expectedMeta: domain.PageMeta{Total: 3, Page: 1, LastPage: 2},
		},
		{
			name:         "last partial page",
			seeded:       3,
			page:         2,
			limit:        2,
			expectedRows: 1,
			expectedMeta: domain.PageMeta{Total: 3, Page: 2, LastPage: 2},
		},
		{
			name:         "page beyond last is empty with unchanged meta",
			seeded:       3,
			page:         5,
			limit:        2,
			expectedRows: 0,
			expectedMeta: domain.PageMeta{Total: 3, Page: 5, LastPage: 2},
		},
		{
			name:         "soft-deleted rows are excluded from total",
			seeded:       3,
			deleted:      1,
			page:         1,
			limit:        10,
			expectedRows: 2,
			expectedMeta: domain.PageMeta{Total: 2, Page: 1, LastPage: 1},
		},
		{
			name:         "empty store",
			page:         1,
			limit:        10,
			expectedRows: 0,
			expectedMeta: domain.PageMeta{Total: 0, Page: 1, LastPage: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			seeded := seed(t, s, tc.seeded)
			for i := 0; i < tc.deleted; i++ {
				_, err := s.SoftDelete(context.Background(), seeded[i].ID)
				require.NoError(t, err)
			}

			// when
			result, err := s.FindAllAvailable(context.Background(), tc.page, tc.limit)

			// then
			require.NoError(t, err)
			assert.Len(t, result.Data, tc.expectedRows)
			assert.Equal(t, tc.expectedMeta, result.Meta)
		})
	}
}

func Test_InMemory_FindAllAvailable_StableOrder(t *testing.T) {
	// given
	s := NewInMemoryStore()
	seeded := seed(t, s, 5)

	// when
	first, err := s.FindAllAvailable(context.Background(), 1, 3)
	require.NoError(t, err)
	second, err := s.FindAllAvailable(context.Background(), 2, 3)
	require.NoError(t, err)

	// then: pages partition the set without overlap
	all := append(first.Data, second.Data...)
	require.Len(t, all, 5)
	for i, product := range all {
		assert.Equal(t, seeded[i].ID, product.ID)
	}
}

func Test_InMemory_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	decPtr := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	t.Run("applies only supplied fields", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		created := seed(t, s, 1)[0]

		// when
		updated, err := s.Update(context.Background(), created.ID, UpdateFields{Price: decPtr("12.5")})

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Name, updated.Name)
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("no fields returns current state without a write", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		created := seed(t, s, 1)[0]

		// when
		current, err := s.Update(context.Background(), created.ID, UpdateFields{})

		// then
		require.NoError(t, err)
		assert.Equal(t, &created, current)
	})

	t.Run("invalid price leaves the record unchanged", func(t *testing.T) {
		// given
		s := NewInMemoryStore()
		created := seed(t, s, 1)[0]

		// when
		_, err := s.Update(context.Background(), created.ID, UpdateFields{Name: strPtr("Robot"), Price: decPtr("-5")})

		// then
		var vErr *catalogerrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		stored, err := s.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, stored.Name)
		assert.True(t, stored.Price.Equal(created.Price))
	})

	t.Run("missing record", func(t *testing.T) {
		s := NewInMemoryStore()

		_, err := s.Update(context.Background(), uuid.New(), UpdateFields{Name: strPtr("Robot")})

		require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	})
}

func Test_InMemory_SoftDelete(t *testing.T) {
	// given
	s := NewInMemoryStore()
	created := seed(t, s, 1)[0]

	// when
	deleted, err := s.SoftDelete(context.Background(), created.ID)

	// then
	require.NoError(t, err)
	assert.False(t, deleted.Available)

	// second delete fails: the transition is one-way
	_, err = s.SoftDelete(context.Background(), created.ID)
	require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_InMemory_FindAvailableByIDs(t *testing.T) {
	// given
	s := NewInMemoryStore()
	seeded := seed(t, s, 3)
	_, err := s.SoftDelete(context.Background(), seeded[2].ID)
	require.NoError(t, err)

	t.Run("omits missing and unavailable IDs", func(t *testing.T) {
		// when
		found, err := s.FindAvailableByIDs(context.Background(), []uuid.UUID{seeded[0].ID, seeded[2].ID, uuid.New()})

		// then
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, seeded[0].ID, found[0].ID)
	})

	t.Run("deduplicates input", func(t *testing.T) {
		// when
		found, err := s.FindAvailableByIDs(context.Background(), []uuid.UUID{seeded[0].ID, seeded[0].ID, seeded[1].ID})

		// then
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		// when
		found, err := s.FindAvailableByIDs(context.Background(), nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
