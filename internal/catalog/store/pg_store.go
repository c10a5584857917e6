package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkostin/catalog_service/internal/catalog/domain"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
)

const (
	sqlInsert = `INSERT INTO products (id, name, price, available)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, name, price, available`

	sqlFindByID = `SELECT id, name, price, available FROM products
		WHERE id = $1 AND available = TRUE`

	sqlCountAvailable = `SELECT count(*) FROM products WHERE available = TRUE`

	sqlFindPage = `SELECT id, name, price, available FROM products
		WHERE available = TRUE
		ORDER BY id
		LIMIT $1 OFFSET $2`

	sqlUpdate = `UPDATE products
		SET name = COALESCE($2, name), price = COALESCE($3, price), updated_at = now()
		WHERE id = $1 AND available = TRUE
		RETURNING id, name, price, available`

	sqlSoftDelete = `UPDATE products
		SET available = FALSE, updated_at = now()
		WHERE id = $1 AND available = TRUE
		RETURNING id, name, price, available`

	sqlFindByIDs = `SELECT id, name, price, available FROM products
		WHERE id = ANY($1) AND available = TRUE
		ORDER BY id`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new ProductStore backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// Create persists a new available product. A duplicate ID violates the primary
// key and surfaces as a StorageError.
func (p *PgStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, sqlInsert, product.ID, product.Name, product.Price)
	created, err := scanProduct(row)
	if err != nil {
		return nil, &catalogerrors.StorageError{Op: "create", Err: err}
	}
	return created, nil
}

// FindByID retrieves a product by ID. Unavailable and nonexistent products are
// both reported as ErrProductNotFound.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := scanProduct(p.db.QueryRow(ctx, sqlFindByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, &catalogerrors.StorageError{Op: "findByID", Err: err}
	}
	return product, nil
}

// FindAllAvailable counts and fetches one page inside a repeatable-read
// transaction so the total cannot drift from the returned rows under
// concurrent writes.
func (p *PgStore) FindAllAvailable(ctx context.Context, page, limit int32) (*domain.Page, error) {
	var total int64
	var products []domain.Product

	offset := (page - 1) * limit
	txErr := p.withTransaction(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sqlCountAvailable).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.Query(ctx, sqlFindPage, limit, offset)
		if err != nil {
			return err
		}
		products, err = scanProducts(rows)
		return err
	})
	if txErr != nil {
		return nil, &catalogerrors.StorageError{Op: "findAllAvailable", Err: txErr}
	}

	return &domain.Page{
		Data: products,
		Meta: domain.NewPageMeta(total, page, limit),
	}, nil
}

// Update writes only the supplied fields. With no fields it degrades to a plain
// read of the current state. The available filter makes a racing delete surface
// as ErrProductNotFound here even after the handler's existence check passed.
func (p *PgStore) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*domain.Product, error) {
	if fields.Empty() {
		return p.FindByID(ctx, id)
	}
	product, err := scanProduct(p.db.QueryRow(ctx, sqlUpdate, id, fields.Name, fields.Price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, &catalogerrors.StorageError{Op: "update", Err: err}
	}
	return product, nil
}

// SoftDelete marks a product unavailable and returns the updated record.
func (p *PgStore) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := scanProduct(p.db.QueryRow(ctx, sqlSoftDelete, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, &catalogerrors.StorageError{Op: "softDelete", Err: err}
	}
	return product, nil
}

// FindAvailableByIDs returns the available products among the given IDs.
// Misses are omitted, not reported.
func (p *PgStore) FindAvailableByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	distinct := DedupeIDs(ids)
	if len(distinct) == 0 {
		return []domain.Product{}, nil
	}
	rows, err := p.db.Query(ctx, sqlFindByIDs, distinct)
	if err != nil {
		return nil, &catalogerrors.StorageError{Op: "findAvailableByIDs", Err: err}
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, &catalogerrors.StorageError{Op: "findAvailableByIDs", Err: err}
	}
	return products, nil
}

// withTransaction runs fn inside a transaction, rolling back on error.
func (p *PgStore) withTransaction(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Available); err != nil {
		return nil, err
	}
	return &product, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Available); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
