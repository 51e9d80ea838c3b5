package order

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateOrder_ReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(42, 648.0, StatusPending, "2026-01-02T03:04:05Z", "2026-01-02T03:04:05Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	ord, err := repo.CreateOrder(context.Background(), Order{
		CustomerID:  42,
		TotalAmount: 648.0,
		Status:      StatusPending,
		CreatedAt:   "2026-01-02T03:04:05Z",
		UpdatedAt:   "2026-01-02T03:04:05Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.ID != 7 {
		t.Fatalf("expected id 7, got %d", ord.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateLines_BatchInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_lines").WithArgs(7, "aaaa0001", 2, 120.0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_lines").WithArgs(7, "bbbb0002", 1, 9.5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lines := []Line{
		{ProductID: "aaaa0001", Quantity: 2, PriceAtPurchase: 120.0},
		{ProductID: "bbbb0002", Quantity: 1, PriceAtPurchase: 9.5},
	}
	if err := repo.CreateLines(context.Background(), 7, lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateLines_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_lines").WithArgs(7, "aaaa0001", 2, 120.0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_lines").WithArgs(7, "", 1, 9.5).WillReturnError(errors.New("not-null violation"))
	mock.ExpectRollback()

	lines := []Line{
		{ProductID: "aaaa0001", Quantity: 2, PriceAtPurchase: 120.0},
		{ProductID: "", Quantity: 1, PriceAtPurchase: 9.5},
	}
	if err := repo.CreateLines(context.Background(), 7, lines); err == nil {
		t.Fatal("expected error from failing batch")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_CompoundPredicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(StatusCancelled, sqlmock.AnyArg(), 7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "total_amount", "status", "created_at", "updated_at"}).
			AddRow(7, 42, 648.0, StatusCancelled, "t", "u"))

	ord, err := repo.UpdateStatus(context.Background(), 7, 42, StatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %q", ord.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_WrongCustomerIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(StatusCancelled, sqlmock.AnyArg(), 7, 99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "total_amount", "status", "created_at", "updated_at"}))

	if _, err := repo.UpdateStatus(context.Background(), 7, 99, StatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByCustomer_AttachesLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM orders").WithArgs(42).WillReturnRows(
		sqlmock.NewRows([]string{"id", "customer_id", "total_amount", "status", "created_at", "updated_at"}).
			AddRow(7, 42, 648.0, StatusPending, "t", "u"))
	mock.ExpectQuery("FROM order_lines").WillReturnRows(
		sqlmock.NewRows([]string{"order_id", "product_id", "quantity", "price_at_purchase"}).
			AddRow(7, "aaaa0001", 2, 120.0).
			AddRow(7, "bbbb0002", 1, 9.5))

	orders, err := repo.ListByCustomer(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if len(orders[0].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(orders[0].Lines))
	}
}
