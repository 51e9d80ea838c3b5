package order

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// CreateOrder inserts the header row only.
	CreateOrder(ctx context.Context, ord Order) (Order, error)
	// CreateLines inserts all lines for an existing header in one batch.
	CreateLines(ctx context.Context, orderID int, lines []Line) error
	// DeleteOrder removes a header (and its lines). Used as the compensating
	// action when the line batch fails after the header was written.
	DeleteOrder(ctx context.Context, orderID int) error
	ListByCustomer(ctx context.Context, customerID int) ([]Order, error)
	// UpdateStatus matches on both order id and customer id so a customer can
	// only touch their own orders.
	UpdateStatus(ctx context.Context, orderID, customerID int, status string) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	lines  map[int][]Line
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lines: make(map[int][]Line), nextID: 1}
}

func (r *InMemoryRepository) CreateOrder(ctx context.Context, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	ord.Lines = nil
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) CreateLines(ctx context.Context, orderID int, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range lines {
		lines[i].OrderID = orderID
	}
	r.lines[orderID] = append(r.lines[orderID], lines...)
	return nil
}

func (r *InMemoryRepository) DeleteOrder(ctx context.Context, orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			delete(r.lines, orderID)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListByCustomer(ctx context.Context, customerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CustomerID != customerID {
			continue
		}
		ord.Lines = append([]Line(nil), r.lines[ord.ID]...)
		out = append(out, ord)
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, orderID, customerID int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == orderID && r.orders[i].CustomerID == customerID {
			r.orders[i].Status = status
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}
