package catalog

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, description, price, image_url, stock_quantity, category, rating`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id
	`
	listByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY created_at DESC, id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	// match_products is a SQL function over the pgvector embedding column.
	matchProductsQuery = `
		SELECT ` + productColumns + `
		FROM match_products($1::vector, $2, $3)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.QueryContext(ctx, listProductsQuery)
	} else {
		rows, err = r.db.QueryContext(ctx, listByCategoryQuery, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRowContext(ctx, getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) MatchByEmbedding(ctx context.Context, vector []float32, threshold float64, limit int) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, matchProductsQuery, vectorLiteral(vector), threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// vectorLiteral renders a vector in pgvector's text format: [0.1,0.2,...].
func vectorLiteral(vector []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		imageURL sql.NullString
		category sql.NullString
		rating   sql.NullFloat64
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&imageURL,
		&p.StockQuantity,
		&category,
		&rating,
	); err != nil {
		return Product{}, err
	}

	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if category.Valid {
		p.Category = &category.String
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	return p, nil
}
