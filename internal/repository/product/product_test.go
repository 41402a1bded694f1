package product

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/migrate"
)

func TestMemory_PutIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	p := domain.Product{ID: "p1", Label: "0001", Name: "Cabeceira 1", Price: 399, Available: true}
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	p.Name = "Cabeceira 1 premium"
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("put again: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record after double put, got %d", len(all))
	}
	if all[0].Name != "Cabeceira 1 premium" {
		t.Fatalf("expected replaced record, got %+v", all[0])
	}
}

func TestMemory_DeleteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	if err := repo.Put(ctx, domain.Product{ID: "p1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete absent id should be a no-op, got %v", err)
	}
	all, _ := repo.GetAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("collection changed by deleting absent id: %d records", len(all))
	}
}

func TestMemory_GetByIDMissing(t *testing.T) {
	repo := NewMemory()
	if _, err := repo.GetByID(context.Background(), "nope"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	now := time.Now().UTC().Truncate(time.Second)
	p := domain.Product{
		ID:        "abc123",
		Label:     "0001",
		Name:      "Cabeceira 1",
		Price:     399,
		Tags:      []string{"cabeceira", "quarto"},
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.GetByID(ctx, "abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != "0001" || got.Price != 399 || len(got.Tags) != 2 {
		t.Fatalf("unexpected product %+v", got)
	}

	p.Price = 449
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("put update: %v", err)
	}
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 || all[0].Price != 449 {
		t.Fatalf("expected single replaced record, got %+v", all)
	}

	if err := repo.Delete(ctx, "abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "abc123"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgres_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if err := repo.Put(ctx, domain.Product{ID: "old", Tags: []string{}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	err := repo.ReplaceAll(ctx, []domain.Product{
		{ID: "n1", Tags: []string{}},
		{ID: "n2", Tags: []string{}},
	})
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records after replace, got %d", len(all))
	}
	if _, err := repo.GetByID(ctx, "old"); err != domain.ErrNotFound {
		t.Fatalf("old record should be gone, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products, cart_snapshots, sessions`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
