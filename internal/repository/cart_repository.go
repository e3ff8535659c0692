package repository

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// CartMutation edits a cart's lines and returns the new lines
type CartMutation func(lines []domain.CartLine) ([]domain.CartLine, error)

// CartRepository holds one in-session cart per owner
type CartRepository interface {
	Get(ctx context.Context, owner string) ([]domain.CartLine, error)
	Update(ctx context.Context, owner string, mutate CartMutation) ([]domain.CartLine, error)
}

type cartRepository struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
	seed  func() []domain.CartLine
}

// NewCartRepository creates an in-process CartRepository. A cart that does
// not exist yet starts with the lines returned by seed (nil means empty).
func NewCartRepository(seed func() []domain.CartLine) CartRepository {
	return &cartRepository{
		carts: make(map[string][]domain.CartLine),
		seed:  seed,
	}
}

// load must be called with mu held
func (r *cartRepository) load(owner string) []domain.CartLine {
	lines, ok := r.carts[owner]
	if !ok {
		if r.seed != nil {
			lines = r.seed()
		}
		r.carts[owner] = lines
	}
	return lines
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	return append([]domain.CartLine{}, lines...)
}

func (r *cartRepository) Get(ctx context.Context, owner string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return copyLines(r.load(owner)), nil
}

// Update applies mutate atomically; the cart is left untouched when mutate fails
func (r *cartRepository) Update(ctx context.Context, owner string, mutate CartMutation) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := mutate(copyLines(r.load(owner)))
	if err != nil {
		return nil, err
	}
	r.carts[owner] = lines
	return copyLines(lines), nil
}
