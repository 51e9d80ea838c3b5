package catalog

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	// MatchByEmbedding asks the store's similarity function for the closest
	// products above the threshold, capped at limit.
	MatchByEmbedding(ctx context.Context, vector []float32, threshold float64, limit int) ([]Product, error)
}

// InMemoryRepository is used for tests and local scenarios. Matches holds the
// rows returned by MatchByEmbedding so similarity behavior can be scripted.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	Matches []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(ctx context.Context, category string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if category != "" && (p.Category == nil || *p.Category != category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) MatchByEmbedding(ctx context.Context, vector []float32, threshold float64, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.Matches
	if len(out) > limit {
		out = out[:limit]
	}
	cp := make([]Product, len(out))
	copy(cp, out)
	return cp, nil
}
