package repository

import (
	"context"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// FixtureCategories is the category table of the home feed
func FixtureCategories() []*domain.Category {
	return []*domain.Category{
		{ID: "chairs", Name: "Chairs", Icon: "cafe-outline"},
		{ID: "tables", Name: "Tables", Icon: "grid-outline"},
		{ID: "sofas", Name: "Sofas", Icon: "bed-outline"},
		{ID: "storage", Name: "Storage", Icon: "gift"},
	}
}

// FixtureProducts is the product table of the home feed
func FixtureProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:            1,
			Name:          "Wardrobe Aneboda",
			Price:         price("30.99"),
			OriginalPrice: pricePtr("45.99"),
			Rating:        4.8,
			Reviews:       124,
			CategoryID:    "chairs",
			Description:   "A modern wardrobe chair featuring a cushy curved back and thick padding. Perfect for contemporary apartments and offices.",
			Colors:        []string{"#FCD34D", "#1F2937", "#EF4444", "#3B82F6"},
			InStock:       true,
			ImageURL:      "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&q=80",
		},
		{
			ID:          2,
			Name:        "Kastoria",
			Price:       price("90.00"),
			Rating:      4.6,
			Reviews:     89,
			CategoryID:  "chairs",
			Description: "Elegant minimalist stool with wooden legs and comfortable cushioned seat.",
			Colors:      []string{"#FCD34D", "#D1D5DB", "#6B7280"},
			InStock:     true,
			ImageURL:    "https://images.unsplash.com/photo-1503602642458-232111445657?w=400&q=80",
		},
		{
			ID:          3,
			Name:        "Promi",
			Price:       price("130.00"),
			Rating:      4.9,
			Reviews:     203,
			CategoryID:  "sofas",
			Description: "Cozy accent chair with plush cushioning and contemporary design.",
			Colors:      []string{"#FCD34D", "#10B981", "#8B5CF6"},
			InStock:     true,
			ImageURL:    "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=400&q=80",
		},
		{
			ID:          4,
			Name:        "Nordic Table",
			Price:       price("85.00"),
			Rating:      4.7,
			Reviews:     156,
			CategoryID:  "tables",
			Description: "Scandinavian-inspired side table with clean lines and natural wood finish.",
			Colors:      []string{"#D4A574", "#1F2937", "#F3F4F6"},
			InStock:     true,
			ImageURL:    "https://images.unsplash.com/photo-1551298370-9d3d53740c72?w=400&q=80",
		},
		{
			ID:          5,
			Name:        "Minimalist Stool",
			Price:       price("65.00"),
			Rating:      4.5,
			Reviews:     67,
			CategoryID:  "chairs",
			Description: "Simple yet elegant stool perfect for kitchen islands and bar counters.",
			Colors:      []string{"#FCD34D", "#EF4444", "#3B82F6"},
			InStock:     false,
			ImageURL:    "https://images.unsplash.com/photo-1519947486511-46149fa0a254?w=400&q=80",
		},
		{
			ID:          6,
			Name:        "Storage Cabinet",
			Price:       price("149.00"),
			Rating:      4.8,
			Reviews:     178,
			CategoryID:  "storage",
			Description: "Spacious storage solution with multiple compartments and modern aesthetics.",
			Colors:      []string{"#8B7355", "#1F2937", "#F3F4F6"},
			InStock:     true,
			ImageURL:    "https://images.unsplash.com/photo-1595526114035-0d45ed16cfbf?w=400&q=80",
		},
	}
}

// FixtureCartLines is the cart every new session starts with when seeding is enabled.
// The sample lines use ids outside the catalog range so adding a catalog
// product never merges into them.
func FixtureCartLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: 101, Name: "Wing Chair", UnitPrice: price("350"), Quantity: 1, Shipping: "Free Shipping"},
		{ProductID: 102, Name: "Madison Wing", UnitPrice: price("410"), Quantity: 1, Shipping: "Free Shipping"},
		{ProductID: 103, Name: "Madison Park", UnitPrice: price("450"), Quantity: 1, Shipping: "Free Shipping"},
	}
}

// FixtureOrders is the sample order history shown on a new profile, oldest first
func FixtureOrders() []domain.Order {
	day := func(d int) time.Time { return time.Date(2024, time.November, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Order{
		{Number: "#12343", Lines: []domain.CartLine{}, Items: 1, Total: price("450"), Status: domain.OrderStatusProcessing, CreatedAt: day(10)},
		{Number: "#12344", Lines: []domain.CartLine{}, Items: 2, Total: price("850"), Status: domain.OrderStatusInTransit, CreatedAt: day(15)},
		{Number: "#12345", Lines: []domain.CartLine{}, Items: 3, Total: price("1210"), Status: domain.OrderStatusDelivered, CreatedAt: day(20)},
	}
}

type fixtureCategoryRepository struct {
	categories []*domain.Category
}

// NewFixtureCategoryRepository serves the given categories from memory
func NewFixtureCategoryRepository(categories []*domain.Category) CategoryRepository {
	return &fixtureCategoryRepository{categories: categories}
}

func (r *fixtureCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fixtureCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCategoryNotFound
}

type fixtureProductRepository struct {
	products []*domain.Product
}

// NewFixtureProductRepository serves the given products from memory
func NewFixtureProductRepository(products []*domain.Product) ProductRepository {
	return &fixtureProductRepository{products: products}
}

func (r *fixtureProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *fixtureProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, ErrProductNotFound
}

// FixtureBanners is the promotional banner set of the home feed
func FixtureBanners() []domain.Banner {
	return []domain.Banner{
		{ID: "1", Title: "Get 50% OFF", Subtitle: "Summer Collection", Description: "On all furniture items", ButtonText: "Shop Now", BackgroundColor: "#374151", AccentColor: "#F59E0B", Icon: "flash-outline"},
		{ID: "2", Title: "Free Shipping", Subtitle: "Limited Time", Description: "On orders over $100", ButtonText: "Learn More", BackgroundColor: "#059669", AccentColor: "#34D399", Icon: "rocket-outline"},
		{ID: "3", Title: "New Arrivals", Subtitle: "Just In", Description: "Fresh styles for your home", ButtonText: "Explore", BackgroundColor: "#7C3AED", AccentColor: "#A78BFA", Icon: "star-outline"},
		{ID: "4", Title: "Member Deal", Subtitle: "Exclusive", Description: "Extra 20% for members", ButtonText: "Join Now", BackgroundColor: "#DC2626", AccentColor: "#FCA5A5", Icon: "heart-outline"},
	}
}
