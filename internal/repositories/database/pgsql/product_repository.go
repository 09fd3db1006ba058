package pgsql

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool, db DBTX) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, sku, name, category, stock, cost, price, status, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.SKU,
		&m.Name,
		&m.Category,
		&m.Stock,
		&m.Cost,
		&m.Price,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.db.Exec(ctx, query,
		m.ProductID, m.SKU, m.Name, m.Category, m.Stock, m.Cost, m.Price, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "failed to save product "+m.ProductID)
}

// UpdateProduct rewrites stock, cost, price and status.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET sku = $2, name = $3, category = $4, stock = $5, cost = $6, price = $7, status = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ProductID, m.SKU, m.Name, m.Category, m.Stock, m.Cost, m.Price, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update product "+m.ProductID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return r.findProduct(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1;`, productID)
}

// FindProductForUpdate reads a product and locks its row until the surrounding transaction ends.
func (r *PgxProductRepository) FindProductForUpdate(ctx context.Context, productID string) (*domain.Product, error) {
	return r.findProduct(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1 FOR UPDATE;`, productID)
}

func (r *PgxProductRepository) findProduct(ctx context.Context, query, productID string) (*domain.Product, error) {
	m, err := scanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, mapError(err, "failed to find product "+productID)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, product_id;`)
	if err != nil {
		return nil, mapError(err, "failed to list products")
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan product row")
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating product rows")
	}
	return products, nil
}
