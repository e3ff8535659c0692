package domain

import (
	"github.com/shopspring/decimal"
)

// AllCategories is the sentinel category id that matches every product
const AllCategories = "all"

// Category represents a product category
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Icon string `json:"icon" db:"icon"`
}

// Product represents a product in the catalog
type Product struct {
	ID            int              `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty" db:"original_price"`
	Rating        float64          `json:"rating" db:"rating"`
	Reviews       int              `json:"reviews" db:"reviews"`
	CategoryID    string           `json:"category" db:"category_id"`
	Description   string           `json:"description" db:"description"`
	Colors        []string         `json:"colors" db:"colors"`
	InStock       bool             `json:"in_stock" db:"in_stock"`
	ImageURL      string           `json:"image" db:"image_url"`
}

// OnDiscount reports whether the product carries an original price above its price
func (p *Product) OnDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// HasColor reports whether color is one of the product's color tokens
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate catalog data
func (p *Product) Clone() *Product {
	cp := *p
	cp.Colors = append([]string(nil), p.Colors...)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		cp.OriginalPrice = &op
	}
	return &cp
}
