package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository is the read-only source of catalog categories.
// List returns categories in catalog order.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
}

// ProductRepository is the read-only source of catalog products.
// List returns products in catalog order; returned values are copies.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}
