package order

import (
	"context"
	"errors"
)

var ErrInvalidStatus = errors.New("invalid order status")

// Service provides the read/update surface for a customer's own orders.
// Order creation goes through the checkout orchestrator, not this service.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int) ([]Order, error) {
	if customerID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpdateStatus lets a customer move one of their own orders to a new status
// (in practice: cancelling a pending order). The customer scoping is enforced
// by the repository's compound predicate.
func (s *Service) UpdateStatus(ctx context.Context, orderID, customerID int, status string) (Order, error) {
	if customerID <= 0 || orderID <= 0 {
		return Order{}, ErrNotFound
	}
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, customerID, status)
}
