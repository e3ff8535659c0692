package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultShipping is the shipping label given to lines added from the catalog
const DefaultShipping = "Free Shipping"

var (
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrEmptyCart        = errors.New("cart is empty")
)

// CartService defines cart and checkout operations for one owner at a time
type CartService interface {
	GetCart(ctx context.Context, owner string) (*domain.Cart, error)
	AddItem(ctx context.Context, owner string, selection *Selection) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, owner string, productID, delta int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner string, productID int) (*domain.Cart, error)
	Checkout(ctx context.Context, owner string) (*domain.Order, error)
	ListOrders(ctx context.Context, owner string) ([]*domain.Order, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	shippingFee decimal.Decimal
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, shippingFee decimal.Decimal) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		shippingFee: shippingFee,
	}
}

// ApplyDelta returns max(1, quantity+delta), saturating at math.MaxInt
func ApplyDelta(quantity, delta int) int {
	if next := addQuantity(quantity, delta); next > 1 {
		return next
	}
	return 1
}

// addQuantity adds two quantities without wrapping around
func addQuantity(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Totals computes the item total and the grand total of lines
func Totals(lines []domain.CartLine, shippingFee decimal.Decimal) domain.CartTotals {
	itemTotal := decimal.Zero
	for _, line := range lines {
		itemTotal = itemTotal.Add(line.Subtotal())
	}
	return domain.CartTotals{
		ItemTotal:   itemTotal,
		ShippingFee: shippingFee,
		Total:       itemTotal.Add(shippingFee),
	}
}

func (s *cartService) view(owner string, lines []domain.CartLine) *domain.Cart {
	return &domain.Cart{
		Owner:  owner,
		Lines:  lines,
		Totals: Totals(lines, s.shippingFee),
	}
}

// GetCart returns the owner's cart with its totals
func (s *cartService) GetCart(ctx context.Context, owner string) (*domain.Cart, error) {
	lines, err := s.cartRepo.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.view(owner, lines), nil
}

// AddItem adds the selected product to the cart. Adding a product that is
// already in the cart raises its quantity and takes the newly selected color.
func (s *cartService) AddItem(ctx context.Context, owner string, selection *Selection) (*domain.Cart, error) {
	product := selection.Product()
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	lines, err := s.cartRepo.Update(ctx, owner, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == product.ID {
				lines[i].Quantity = addQuantity(lines[i].Quantity, selection.Quantity())
				lines[i].Color = selection.Color()
				return lines, nil
			}
		}
		return append(lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  selection.Quantity(),
			Shipping:  DefaultShipping,
			Color:     selection.Color(),
			ImageURL:  product.ImageURL,
		}), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.view(owner, lines), nil
}

// UpdateQuantity moves a line's quantity by delta, flooring at 1
func (s *cartService) UpdateQuantity(ctx context.Context, owner string, productID, delta int) (*domain.Cart, error) {
	lines, err := s.cartRepo.Update(ctx, owner, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = ApplyDelta(lines[i].Quantity, delta)
				return lines, nil
			}
		}
		return nil, ErrCartLineNotFound
	})
	if err != nil {
		if errors.Is(err, ErrCartLineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return s.view(owner, lines), nil
}

// RemoveItem deletes the line for productID. Removing an absent line is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, owner string, productID int) (*domain.Cart, error) {
	lines, err := s.cartRepo.Update(ctx, owner, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		kept := lines[:0]
		for _, line := range lines {
			if line.ProductID != productID {
				kept = append(kept, line)
			}
		}
		return kept, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.view(owner, lines), nil
}

// Checkout turns the cart into a processing order and empties the cart
func (s *cartService) Checkout(ctx context.Context, owner string) (*domain.Order, error) {
	var ordered []domain.CartLine
	_, err := s.cartRepo.Update(ctx, owner, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		if len(lines) == 0 {
			return nil, ErrEmptyCart
		}
		ordered = lines
		return []domain.CartLine{}, nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	items := 0
	for _, line := range ordered {
		items = addQuantity(items, line.Quantity)
	}

	order := &domain.Order{
		ID:        uuid.New(),
		Owner:     owner,
		Lines:     ordered,
		Items:     items,
		Total:     Totals(ordered, s.shippingFee).Total,
		Status:    domain.OrderStatusProcessing,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// ListOrders returns the owner's orders, newest first
func (s *cartService) ListOrders(ctx context.Context, owner string) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
