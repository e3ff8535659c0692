package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// allCategory is listed first so clients can render the "All" chip
var allCategory = domain.Category{ID: domain.AllCategories, Name: "All", Icon: "home-outline"}

// ProductFilter selects the visible subset of the catalog.
// An empty CategoryID behaves like "all"; an empty Query matches everything.
type ProductFilter struct {
	CategoryID string
	Query      string
}

// CatalogService defines read access to the catalog view-model
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	NewSelection(ctx context.Context, productID int) (*Selection, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// FilterByCategory keeps products whose category equals categoryID, or all of
// them for the "all" sentinel. An unknown category yields an empty result.
func FilterByCategory(products []*domain.Product, categoryID string) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if categoryID == domain.AllCategories || p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps products whose name or category id contains query, ignoring case
func Search(products []*domain.Product, query string) []*domain.Product {
	if query == "" {
		return append(make([]*domain.Product, 0, len(products)), products...)
	}

	needle := strings.ToLower(query)
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.CategoryID), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ListCategories returns the "all" pseudo-category followed by the catalog categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	all := allCategory
	return append([]*domain.Category{&all}, categories...), nil
}

// GetCategory resolves a category id, including the "all" pseudo-category.
// Unknown ids return repository.ErrCategoryNotFound.
func (s *catalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if id == domain.AllCategories {
		all := allCategory
		return &all, nil
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListProducts applies the category filter, then the text filter
func (s *catalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	categoryID := filter.CategoryID
	if categoryID == "" {
		categoryID = domain.AllCategories
	}

	return Search(FilterByCategory(products, categoryID), filter.Query), nil
}

// GetProduct resolves a product by id; unknown ids return repository.ErrProductNotFound
func (s *catalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// NewSelection opens the detail-view selection state for a product
func (s *catalogService) NewSelection(ctx context.Context, productID int) (*Selection, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewSelection(product), nil
}

// ValidateCatalog checks the integrity rules every catalog source must satisfy
func ValidateCatalog(categories []*domain.Category, products []*domain.Product) error {
	var errs []error

	categoryIDs := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c.ID == "" || c.ID == domain.AllCategories {
			errs = append(errs, fmt.Errorf("category %q: reserved or empty id", c.ID))
		}
		if categoryIDs[c.ID] {
			errs = append(errs, fmt.Errorf("category %q: duplicate id", c.ID))
		}
		categoryIDs[c.ID] = true
	}

	productIDs := make(map[int]bool, len(products))
	for _, p := range products {
		if productIDs[p.ID] {
			errs = append(errs, fmt.Errorf("product %d: duplicate id", p.ID))
		}
		productIDs[p.ID] = true

		if !categoryIDs[p.CategoryID] {
			errs = append(errs, fmt.Errorf("product %d: unknown category %q", p.ID, p.CategoryID))
		}
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %d: negative price", p.ID))
		}
		if p.OriginalPrice != nil && !p.OriginalPrice.GreaterThan(p.Price) {
			errs = append(errs, fmt.Errorf("product %d: original price must exceed price", p.ID))
		}
		if p.Rating < 0 || p.Rating > 5 {
			errs = append(errs, fmt.Errorf("product %d: rating %.1f out of range", p.ID, p.Rating))
		}
		if p.Reviews < 0 {
			errs = append(errs, fmt.Errorf("product %d: negative review count", p.ID))
		}
		if len(p.Colors) == 0 {
			errs = append(errs, fmt.Errorf("product %d: no colors", p.ID))
		}
	}

	return errors.Join(errs...)
}

// LoadAndValidateCatalog reads both repositories and runs ValidateCatalog
func LoadAndValidateCatalog(ctx context.Context, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
	categories, err := categoryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	products, err := productRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	return ValidateCatalog(categories, products)
}
