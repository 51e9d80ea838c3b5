package category

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// Repository lists the distinct category names present in the catalog.
type Repository interface {
	List(ctx context.Context) ([]string, error)
}

// PostgresRepository implements Repository against the products table.
type PostgresRepository struct {
	db *sql.DB
}

const listCategoriesQuery = `
	SELECT DISTINCT category
	FROM products
	WHERE category IS NOT NULL AND category <> ''
	ORDER BY category
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// InMemoryRepository derives categories from a fixed set, for tests and
// local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewInMemoryRepository(names []string) *InMemoryRepository {
	r := &InMemoryRepository{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n != "" {
			r.names[n] = struct{}{}
		}
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	names, err := h.repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(names)
}
