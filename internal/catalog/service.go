package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chaow95/storefront-backend/internal/embedding"
)

// ErrEmbeddingUnavailable means a text search could not be resolved to a
// vector. The search fails outright; there is no keyword fallback.
var ErrEmbeddingUnavailable = errors.New("search is unavailable")

const (
	matchThreshold = 0.3
	matchLimit     = 50
)

type Service struct {
	repo     Repository
	embedder embedding.Client
}

func NewService(repo Repository, embedder embedding.Client) *Service {
	return &Service{repo: repo, embedder: embedder}
}

// Search returns display-shaped products. An empty searchText lists the
// catalog; otherwise the text is embedded and matched by vector similarity.
// The category filter applies to whichever result set was obtained.
func (s *Service) Search(ctx context.Context, searchText, category string) ([]ProductView, error) {
	text := strings.TrimSpace(searchText)
	if text == "" {
		products, err := s.repo.List(ctx, category)
		if err != nil {
			return nil, err
		}
		return adaptAll(products), nil
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrEmbeddingUnavailable)
	}

	matches, err := s.repo.MatchByEmbedding(ctx, vector, matchThreshold, matchLimit)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := matches[:0]
		for _, p := range matches {
			if p.Category != nil && *p.Category == category {
				filtered = append(filtered, p)
			}
		}
		matches = filtered
	}
	return adaptAll(matches), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ProductView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return AdaptView(p), nil
}
