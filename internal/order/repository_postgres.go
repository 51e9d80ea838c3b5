package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (customer_id, total_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	insertLineQuery = `
		INSERT INTO order_lines (order_id, product_id, quantity, price_at_purchase)
		VALUES ($1,$2,$3,$4)
	`
	deleteOrderQuery = `DELETE FROM orders WHERE id = $1`

	listOrdersQuery = `
		SELECT id, customer_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY id DESC
	`
	listLinesQuery = `
		SELECT order_id, product_id, quantity, price_at_purchase
		FROM order_lines
		WHERE order_id = ANY($1::int[])
		ORDER BY order_id, product_id
	`
	updateStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND customer_id = $4
		RETURNING id, customer_id, total_amount, status, created_at, updated_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, ord Order) (Order, error) {
	err := r.db.QueryRowContext(ctx, insertOrderQuery,
		ord.CustomerID, ord.TotalAmount, ord.Status, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	ord.Lines = nil
	return ord, nil
}

// CreateLines writes the whole batch in one transaction so a mid-batch
// failure never leaves a partial set of lines behind.
func (r *PostgresRepository) CreateLines(ctx context.Context, orderID int, lines []Line) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, ln := range lines {
		if _, err := tx.ExecContext(ctx, insertLineQuery, orderID, ln.ProductID, ln.Quantity, ln.PriceAtPurchase); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, orderID int) error {
	result, err := r.db.ExecContext(ctx, deleteOrderQuery, orderID)
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

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.TotalAmount, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.db.QueryContext(ctx, listLinesQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	byOrder := make(map[int][]Line)
	for lineRows.Next() {
		var ln Line
		if err := lineRows.Scan(&ln.OrderID, &ln.ProductID, &ln.Quantity, &ln.PriceAtPurchase); err != nil {
			return nil, err
		}
		byOrder[ln.OrderID] = append(byOrder[ln.OrderID], ln)
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Lines = byOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID, customerID int, status string) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var ord Order
	err := r.db.QueryRowContext(ctx, updateStatusQuery, status, now, orderID, customerID).Scan(
		&ord.ID, &ord.CustomerID, &ord.TotalAmount, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}
