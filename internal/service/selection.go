package service

import (
	"errors"

	"storefront/internal/domain"
)

var (
	ErrInvalidColor    = errors.New("color is not offered for this product")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Selection is the ephemeral color and quantity choice of a product detail view
type Selection struct {
	product  *domain.Product
	color    string
	quantity int
}

// NewSelection starts with the first color and a quantity of 1
func NewSelection(product *domain.Product) *Selection {
	s := &Selection{product: product, quantity: 1}
	if len(product.Colors) > 0 {
		s.color = product.Colors[0]
	}
	return s
}

func (s *Selection) Product() *domain.Product { return s.product }
func (s *Selection) Color() string { return s.color }
func (s *Selection) Quantity() int { return s.quantity }

// SelectColor picks one of the product's colors
func (s *Selection) SelectColor(color string) error {
	if !s.product.HasColor(color) {
		return ErrInvalidColor
	}
	s.color = color
	return nil
}

// Increment raises the quantity. It stops at math.MaxInt instead of wrapping.
func (s *Selection) Increment() {
	s.quantity = ApplyDelta(s.quantity, 1)
}

// Decrement lowers the quantity, never below 1
func (s *Selection) Decrement() {
	s.quantity = ApplyDelta(s.quantity, -1)
}

// SetQuantity replaces the quantity
func (s *Selection) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	s.quantity = quantity
	return nil
}
