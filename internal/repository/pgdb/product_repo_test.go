package pgdb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog/internal/domain"
	"github.com/DRSN-tech/catalog/internal/repository/pgdb/converter"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

var productColumns = []string{"id", "name", "description", "price", "created_at"}

func newMockRepo(t *testing.T, caseInsensitive bool) (pgxmock.PgxPoolIface, *ProductRepo) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewProductRepo(mock, converter.NewProductConverterImpl(), caseInsensitive)
}

func checkExpectations(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindAll_PassesFilter(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		caseInsensitive bool
		fragment        string
	}{
		{"case sensitive", false, "strpos(name, $1::text) > 0"},
		{"case insensitive", true, "strpos(lower(name), lower($1::text)) > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t, tt.caseInsensitive)

			mock.ExpectQuery(regexp.QuoteMeta(tt.fragment)).
				WithArgs("apple").
				WillReturnRows(pgxmock.NewRows(productColumns).
					AddRow(int64(1), "Apple", "", decimal.RequireFromString("9.99"), created).
					AddRow(int64(3), "Pineapple", "sweet", decimal.RequireFromString("4.50"), created))

			products, err := repo.FindAll(context.Background(), "apple")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if len(products) != 2 || products[0].ID != 1 || products[1].Name != "Pineapple" {
				t.Errorf("unexpected products: %+v", products)
			}
			if !products[1].Price.Equal(decimal.RequireFromString("4.5")) {
				t.Errorf("expected price 4.5, got %s", products[1].Price)
			}

			checkExpectations(t, mock)
		})
	}
}

func TestFindAll_Empty(t *testing.T) {
	mock, repo := newMockRepo(t, false)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
		WithArgs("").
		WillReturnRows(pgxmock.NewRows(productColumns))

	products, err := repo.FindAll(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", products)
	}

	checkExpectations(t, mock)
}

func TestFindByID_Absent(t *testing.T) {
	mock, repo := newMockRepo(t, false)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(productColumns))

	product, err := repo.FindByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if product != nil {
		t.Errorf("expected nil product, got %+v", product)
	}

	checkExpectations(t, mock)
}

func TestInsert_ReturnsStoredRow(t *testing.T) {
	mock, repo := newMockRepo(t, false)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("MSK", 3*60*60))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products (name, description, price, created_at)")).
		WithArgs("Apple", "fresh", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(int64(7), "Apple", "fresh", decimal.RequireFromString("9.99"), created))

	product, err := repo.Insert(context.Background(), &domain.Product{
		Name:        "Apple",
		Description: "fresh",
		Price:       decimal.RequireFromString("9.99"),
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if product.ID != 7 {
		t.Errorf("expected id 7, got %d", product.ID)
	}
	if product.CreatedAt.Location() != time.UTC || !product.CreatedAt.Equal(created) {
		t.Errorf("expected createdAt %v in UTC, got %v", created, product.CreatedAt)
	}

	checkExpectations(t, mock)
}

func TestUpdate_AbsentAndPresent(t *testing.T) {
	mock, repo := newMockRepo(t, false)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WithArgs(int64(99), "Pear", "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(productColumns))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WithArgs(int64(1), "Pear", "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(int64(1), "Pear", "", decimal.RequireFromString("3.10"), created))

	in := domain.NewProductInput("Pear", nil, decimal.RequireFromString("3.10"))

	missing, err := repo.Update(context.Background(), 99, in)
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for absent product, got (%v, %v)", missing, err)
	}

	updated, err := repo.Update(context.Background(), 1, in)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Name != "Pear" || !updated.CreatedAt.Equal(created) {
		t.Errorf("unexpected update result: %+v", updated)
	}

	checkExpectations(t, mock)
}

func TestDelete_RowsAffected(t *testing.T) {
	mock, repo := newMockRepo(t, false)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), 1)
	if err != nil || !deleted {
		t.Errorf("expected first delete true, got (%v, %v)", deleted, err)
	}

	deleted, err = repo.Delete(context.Background(), 1)
	if err != nil || deleted {
		t.Errorf("expected second delete false, got (%v, %v)", deleted, err)
	}

	checkExpectations(t, mock)
}

func TestStorageFaultsAreReturned(t *testing.T) {
	mock, repo := newMockRepo(t, false)
	errConn := errors.New("connection refused")

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WithArgs("").WillReturnError(errConn)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).WithArgs(int64(1)).WillReturnError(errConn)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).WithArgs(int64(1)).WillReturnError(errConn)

	if _, err := repo.FindAll(context.Background(), ""); !errors.Is(err, errConn) {
		t.Errorf("FindAll: expected connection error, got: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), 1); !errors.Is(err, errConn) {
		t.Errorf("FindByID: expected connection error, got: %v", err)
	}
	if _, err := repo.Delete(context.Background(), 1); !errors.Is(err, errConn) {
		t.Errorf("Delete: expected connection error, got: %v", err)
	}

	checkExpectations(t, mock)
}
