package pgdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog/internal/cfg"
	"github.com/DRSN-tech/catalog/internal/domain"
	"github.com/DRSN-tech/catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/DRSN-tech/catalog/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// setupLiveRepo подключается к PostgreSQL из POSTGRES_TEST_DSN и применяет миграции.
func setupLiveRepo(t *testing.T) (*pgxpool.Pool, *ProductRepo) {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skipf("POSTGRES_TEST_DSN not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Skipf("PostgreSQL not available: %v", err)
	}
	t.Cleanup(pool.Close)

	db := postgres.NewPgDatabase(pool, &cfg.PGDBCfg{MigrationsDir: "../../../db/migrations"}, dsn)
	log := logger.NewSlogLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
	if err := db.RunMigrations(log); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return pool, NewProductRepo(pool, converter.NewProductConverterImpl(), false)
}

func TestLive_ProductLifecycle(t *testing.T) {
	pool, repo := setupLiveRepo(t)
	ctx := context.Background()

	prefix := "live-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM products WHERE strpos(name, $1) = 1`, prefix)
	})

	created, err := repo.Insert(ctx, &domain.Product{
		Name:      prefix + " Apple",
		Price:     decimal.RequireFromString("19.99"),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 || created.Description != "" {
		t.Errorf("unexpected inserted product: %+v", created)
	}

	found, err := repo.FindAll(ctx, prefix)
	if err != nil || len(found) != 1 || found[0].ID != created.ID {
		t.Fatalf("expected to find inserted product, got (%+v, %v)", found, err)
	}
	if !found[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("expected price 19.99, got %s", found[0].Price)
	}

	updated, err := repo.Update(ctx, created.ID, domain.NewProductInput(prefix+" Pear", nil, decimal.RequireFromString("1.50")))
	if err != nil || updated == nil || updated.Name != prefix+" Pear" {
		t.Fatalf("unexpected update result: (%+v, %v)", updated, err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected createdAt unchanged, got %v want %v", updated.CreatedAt, created.CreatedAt)
	}

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete true, got (%v, %v)", deleted, err)
	}

	missing, err := repo.FindByID(ctx, created.ID)
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) after delete, got (%v, %v)", missing, err)
	}
}

func TestLive_PricePrecisionPreserved(t *testing.T) {
	pool, repo := setupLiveRepo(t)
	ctx := context.Background()

	prefix := "live-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM products WHERE strpos(name, $1) = 1`, prefix)
	})

	for _, price := range []string{"9.999", "12345678901234567890.123456"} {
		created, err := repo.Insert(ctx, &domain.Product{
			Name:      prefix + " " + price,
			Price:     decimal.RequireFromString(price),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("insert %s: %v", price, err)
		}
		if !created.Price.Equal(decimal.RequireFromString(price)) {
			t.Errorf("insert returned price %s, want %s", created.Price, price)
		}

		found, err := repo.FindByID(ctx, created.ID)
		if err != nil || found == nil {
			t.Fatalf("find %d: (%v, %v)", created.ID, found, err)
		}
		if !found.Price.Equal(decimal.RequireFromString(price)) {
			t.Errorf("stored price %s, want %s", found.Price, price)
		}
	}
}
