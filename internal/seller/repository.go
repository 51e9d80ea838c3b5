package seller

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	ListBySeller(ctx context.Context, sellerID int) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	// Delete matches on both product id and seller id so a seller cannot
	// remove another seller's row by guessing an id.
	Delete(ctx context.Context, productID string, sellerID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) ListBySeller(ctx context.Context, sellerID int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, productID string, sellerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.storage {
		if p.ID == productID && p.SellerID == sellerID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
