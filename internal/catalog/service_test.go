package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chaow95/storefront-backend/internal/embedding"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

func strptr(s string) *string { return &s }

func TestSearch_EmptyTextListsCatalog(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: "a1b2c3d4-0000", Name: "Cat tower", Price: 120, StockQuantity: 3},
		{ID: "deadbeef-0001", Name: "Dog bed", Price: 80, StockQuantity: 0, Category: strptr("Pet supplies")},
	})
	svc := NewService(repo, &fakeEmbedder{err: embedding.ErrUnavailable})

	views, err := svc.Search(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	// embedder must not be consulted for empty search text
}

func TestSearch_CategoryFilterOnList(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: "a", Name: "Cat tower", Category: strptr("Cat exercise")},
		{ID: "b", Name: "Dog bed", Category: strptr("Pet supplies")},
	})
	svc := NewService(repo, &fakeEmbedder{})

	views, err := svc.Search(context.Background(), "", "Pet supplies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Name != "Dog bed" {
		t.Fatalf("expected only 'Dog bed', got %+v", views)
	}
}

func TestSearch_EmbeddingUnavailableIsHardFailure(t *testing.T) {
	repo := NewInMemoryRepository([]Product{{ID: "a", Name: "Cat tower"}})
	repo.Matches = repo.storage
	svc := NewService(repo, &fakeEmbedder{err: embedding.ErrUnavailable})

	views, err := svc.Search(context.Background(), "climbing toy", "")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no results on failure, got %d", len(views))
	}
}

func TestSearch_EmptyVectorIsHardFailure(t *testing.T) {
	repo := NewInMemoryRepository([]Product{{ID: "a", Name: "Cat tower"}})
	svc := NewService(repo, &fakeEmbedder{})

	_, err := svc.Search(context.Background(), "climbing toy", "")
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), "<nil>") {
		t.Fatalf("error message should name the empty vector, got %q", err)
	}
}

func TestSearch_VectorResultsFilteredByCategory(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	repo.Matches = []Product{
		{ID: "a", Name: "Cat tower", Category: strptr("Cat exercise")},
		{ID: "b", Name: "Scratch post", Category: strptr("Cat exercise")},
		{ID: "c", Name: "Dog bed", Category: strptr("Pet supplies")},
	}
	svc := NewService(repo, &fakeEmbedder{vector: []float32{0.1, 0.2}})

	views, err := svc.Search(context.Background(), "climbing toy", "Cat exercise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 filtered matches, got %d", len(views))
	}
	for _, v := range views {
		if v.Category == nil || *v.Category != "Cat exercise" {
			t.Fatalf("category filter leaked %+v", v)
		}
	}
}

func TestAdaptView_Defaults(t *testing.T) {
	v := AdaptView(Product{ID: "0a1b2c3d4e5f", Name: "Bowl", Price: 9.5, StockQuantity: 0})
	if v.Image != PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", v.Image)
	}
	if v.InStock {
		t.Fatal("expected out-of-stock product")
	}
	if v.ProductID != "0a1b2c3d4e5f" {
		t.Fatalf("persisted id must be carried through, got %q", v.ProductID)
	}
	if v.DisplayID != 0x0a1b2c3d {
		t.Fatalf("unexpected display id %d", v.DisplayID)
	}
}

func TestDisplayID(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"deadbeef-1234", 0xdeadbeef},
		{"00000001", 1},
		{"ff", 0xff},
		{"", 0},
		{"not-hex!", 0},
	}
	for _, tc := range cases {
		if got := DisplayID(tc.id); got != tc.want {
			t.Errorf("DisplayID(%q) = %d, want %d", tc.id, got, tc.want)
		}
	}
}
