package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, price, original_price, rating, reviews, category_id, description, colors, in_stock, image_url`

type productRepository struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

// NewProductRepository creates a postgres-backed ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db, typeMap: pgtype.NewMap()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *productRepository) scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var originalPrice decimal.NullDecimal
	var colors []string

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&originalPrice,
		&product.Rating,
		&product.Reviews,
		&product.CategoryID,
		&product.Description,
		r.typeMap.SQLScanner(&colors),
		&product.InStock,
		&product.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	if originalPrice.Valid {
		op := originalPrice.Decimal
		product.OriginalPrice = &op
	}
	product.Colors = colors

	return product, nil
}

// List retrieves all products in catalog order
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY position ASC
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1
	`, productColumns)

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}
