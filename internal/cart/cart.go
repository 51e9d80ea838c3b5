package cart

import (
	"errors"
	"math"
	"sync"

	"github.com/chaow95/storefront-backend/internal/catalog"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Item is one product-and-quantity line in a cart. ProductID (the opaque
// persisted identifier) is the matching key; DisplayID is carried only for
// client payloads.
type Item struct {
	ProductID     string  `json:"productId"`
	DisplayID     int     `json:"displayId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	StockQuantity int     `json:"stockQuantity"`
	Quantity      int     `json:"quantity"`
}

// Store is the in-memory cart for one session. Mutations hold a mutex because
// concurrent requests from the same session may race; nothing is persisted.
//
// Invariants: at most one Item per ProductID, and every stored Item has
// Quantity >= 1 (a mutation driving it to 0 removes the line instead).
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{items: make([]Item, 0)}
}

// Add merges qty into an existing line for the same product or appends a new
// one, preserving insertion order. Adds are additive: two calls with qty n
// equal one call with 2n.
func (s *Store) Add(p catalog.ProductView, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ProductID {
			s.items[i].Quantity += qty
			return nil
		}
	}

	s.items = append(s.items, Item{
		ProductID:     p.ProductID,
		DisplayID:     p.DisplayID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		StockQuantity: p.StockQuantity,
		Quantity:      qty,
	})
	return nil
}

// UpdateQuantity sets the line to max(0, qty); zero removes the line. Stock
// clamping is a presentation concern and is not enforced here.
func (s *Store) UpdateQuantity(productID string, qty int) {
	if qty < 0 {
		qty = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		if qty == 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = qty
		}
		return
	}
}

// Remove drops the line unconditionally; no-op when absent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
}

// Items returns a snapshot copy in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total sums price x quantity. Non-finite prices and non-positive quantities
// contribute zero instead of poisoning the sum.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.items {
		if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 || it.Quantity <= 0 {
			continue
		}
		total += it.Price * float64(it.Quantity)
	}
	return total
}
