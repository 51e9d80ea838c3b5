package seller

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listBySellerQuery = `
		SELECT id, seller_id, name, description, price, image_url, stock_quantity, category, created_at, updated_at
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC, id
	`
	insertProductQuery = `
		INSERT INTO products (id, seller_id, name, description, price, image_url, stock_quantity, category, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	// both predicates are load-bearing; row-level security on the store is
	// assumed to mirror this exact shape
	deleteProductQuery = `DELETE FROM products WHERE id = $1 AND seller_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID int) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listBySellerQuery, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var (
			p        Product
			imageURL sql.NullString
			category sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &imageURL, &p.StockQuantity, &category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		if category.Valid {
			p.Category = &category.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.SellerID, p.Name, p.Description, p.Price, p.ImageURL, p.StockQuantity, p.Category, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, productID string, sellerID int) error {
	result, err := r.db.ExecContext(ctx, deleteProductQuery, productID, sellerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
