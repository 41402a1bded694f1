package product

import (
	"context"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// Repository is the durable keyed product collection. Each call is atomic on
// its own; there is no cross-call transaction, so read-modify-write sequences
// are only safe under the single cooperative writer the catalog assumes.
type Repository interface {
	// GetAll returns every record in unspecified order; callers sort.
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// Put inserts a record under a new id or fully replaces the record with
	// the same id. No partial merge.
	Put(ctx context.Context, p domain.Product) error
	// Delete removes the record if present; deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	// ReplaceAll destructively swaps the whole collection in one transaction.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}
