package cart

import (
	"context"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// DefaultSlot is the slot name used when the client does not pick one. The
// name carries over from the catalog's original persisted key.
const DefaultSlot = "cart_v2"

// Repository persists a cart as one snapshot per named slot. Every save
// writes the whole line collection in a single call, so a snapshot is always
// internally consistent even though the cart and product stores are
// persisted independently.
type Repository interface {
	// Load returns the cart lines for the slot. A missing or unparseable
	// snapshot reads as an empty cart, never as an error.
	Load(ctx context.Context, slot string) ([]domain.CartLine, error)
	Save(ctx context.Context, slot string, lines []domain.CartLine) error
	Clear(ctx context.Context, slot string) error
}
