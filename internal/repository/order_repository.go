package repository

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// firstOrderNumber follows the numbers used by FixtureOrders
const firstOrderNumber = 12346

// OrderRepository stores checked-out orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByOwner(ctx context.Context, owner string) ([]*domain.Order, error)
}

type orderRepository struct {
	mu     sync.Mutex
	orders []*domain.Order
	next   int
	seed   func() []domain.Order
	seeded map[string]bool
}

// NewOrderRepository creates an in-process OrderRepository. When seed is not
// nil, each owner's history starts with the orders it returns (oldest first).
func NewOrderRepository(seed func() []domain.Order) OrderRepository {
	return &orderRepository{
		next:   firstOrderNumber,
		seed:   seed,
		seeded: make(map[string]bool),
	}
}

// ensureSeeded must be called with mu held
func (r *orderRepository) ensureSeeded(owner string) {
	if r.seed == nil || r.seeded[owner] {
		return
	}
	r.seeded[owner] = true

	for _, order := range r.seed() {
		order := order
		order.ID = uuid.New()
		order.Owner = owner
		order.Lines = copyLines(order.Lines)
		r.orders = append(r.orders, &order)
	}
}

// Create assigns the order number and stores the order
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureSeeded(order.Owner)

	order.Number = fmt.Sprintf("#%d", r.next)
	r.next++

	cp := *order
	cp.Lines = copyLines(order.Lines)
	r.orders = append(r.orders, &cp)
	return nil
}

// ListByOwner returns the owner's orders, newest first
func (r *orderRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureSeeded(owner)

	out := []*domain.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].Owner == owner {
			cp := *r.orders[i]
			cp.Lines = copyLines(r.orders[i].Lines)
			out = append(out, &cp)
		}
	}
	return out, nil
}
