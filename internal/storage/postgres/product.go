// Package postgres implements the product record store on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/product-drawer/internal/domain/product"
)

const (
	listProductsSQL = `SELECT id, name, price, offered_price, image_url, created_at
		FROM products ORDER BY created_at, id`

	createProductSQL = `INSERT INTO products
		(id, name, price, offered_price, price_amount, offered_price_amount, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	updateProductSQL = `UPDATE products
		SET name = $2, price = $3, offered_price = $4,
			price_amount = $5, offered_price_amount = $6, image_url = $7
		WHERE id = $1
		RETURNING created_at`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products ordered by creation time.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Create inserts p under a freshly generated ID. Prices that parse as
// numbers are also stored in the *_amount columns.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	id := uuid.NewString()
	err := r.pool.QueryRow(ctx, createProductSQL,
		id, p.Name, p.Price, p.OfferedPrice,
		product.Amount(p.Price), product.Amount(p.OfferedPrice), p.ImageURL,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	p.ID = id
	return nil
}

// Update overwrites every mutable column of the product with p.ID.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	err := r.pool.QueryRow(ctx, updateProductSQL,
		p.ID, p.Name, p.Price, p.OfferedPrice,
		product.Amount(p.Price), product.Amount(p.OfferedPrice), p.ImageURL,
	).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.ErrNotFound
		}
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	return nil
}

// Delete removes the product with the given ID. Missing rows are ignored.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, deleteProductSQL, id); err != nil {
		return fmt.Errorf("deleting product %q: %w", id, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OfferedPrice, &p.ImageURL, &p.CreatedAt)
	return p, err
}
