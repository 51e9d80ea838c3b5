package seller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid product input")

// Service is the seller's inventory surface; every operation is scoped to
// the calling seller's identity.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, sellerID int) ([]Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// Create assigns the opaque persisted identifier (a uuid) and inserts the
// row under the caller's seller id.
func (s *Service) Create(ctx context.Context, sellerID int, in CreateInput) (Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price < 0 || in.StockQuantity < 0 {
		return Product{}, ErrInvalidInput
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(ctx, Product{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		ImageURL:      in.ImageURL,
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (s *Service) Delete(ctx context.Context, sellerID int, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, productID, sellerID)
}
