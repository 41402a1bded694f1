package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	cartrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/cart"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
)

var ErrQuantityRequired = errors.New("quantity must be positive")

// Service owns cart mutations. Every mutation is a load-modify-save of the
// whole snapshot, so mutations on the same slot are serialized through a
// per-slot mutex: two concurrent add(+1) calls always compose to +2 instead
// of losing an update.
type Service struct {
	repo     cartrepo.Repository
	products productrepo.Repository
	now      func() time.Time

	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

func New(repo cartrepo.Repository, products productrepo.Repository) *Service {
	return &Service{
		repo:     repo,
		products: products,
		now:      time.Now,
		slots:    make(map[string]*sync.Mutex),
	}
}

// Line is a cart line joined with its product for display. Product is nil
// for a dangling reference; such lines are inert, not erroneous.
type Line struct {
	domain.CartLine
	Product *domain.Product `json:"product,omitempty"`
}

// Summary is the view-ready cart: resolvable lines, the aggregate item count
// across all lines (dangling ones included) and the total of resolvable ones.
type Summary struct {
	Lines []Line  `json:"lines"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Get returns the raw cart lines for the slot.
func (s *Service) Get(ctx context.Context, slot string) ([]domain.CartLine, error) {
	return s.repo.Load(ctx, slot)
}

// Add increments an existing line's quantity by qty, or inserts a new line.
func (s *Service) Add(ctx context.Context, slot, productID string, qty int) error {
	if qty <= 0 {
		return ErrQuantityRequired
	}
	return s.mutate(ctx, slot, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Qty += qty
				return lines
			}
		}
		return append(lines, domain.CartLine{
			ProductID: productID,
			Qty:       qty,
			AddedAt:   s.now().UTC(),
		})
	})
}

// ChangeQty sets a line's quantity to an absolute value. qty <= 0 removes
// the line. Changing an absent line is a no-op.
func (s *Service) ChangeQty(ctx context.Context, slot, productID string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, slot, productID)
	}
	return s.mutate(ctx, slot, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Qty = qty
				break
			}
		}
		return lines
	})
}

// Remove deletes the line for productID if present.
func (s *Service) Remove(ctx context.Context, slot, productID string) error {
	return s.mutate(ctx, slot, func(lines []domain.CartLine) []domain.CartLine {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != productID {
				out = append(out, l)
			}
		}
		return out
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, slot string) error {
	mu := s.slotMutex(slot)
	mu.Lock()
	defer mu.Unlock()
	return s.repo.Clear(ctx, slot)
}

// Count returns the aggregate quantity across all lines.
func (s *Service) Count(ctx context.Context, slot string) (int, error) {
	lines, err := s.repo.Load(ctx, slot)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return total, nil
}

// GetSummary joins cart lines with the product store for display. Lines
// whose product id no longer resolves keep counting but carry no product.
func (s *Service) GetSummary(ctx context.Context, slot string) (*Summary, error) {
	lines, err := s.repo.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	summary := &Summary{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		line := Line{CartLine: l}
		if p, ok := byID[l.ProductID]; ok {
			cp := p
			line.Product = &cp
			summary.Total += p.Price * float64(l.Qty)
		}
		summary.Count += l.Qty
		summary.Lines = append(summary.Lines, line)
	}
	return summary, nil
}

func (s *Service) mutate(ctx context.Context, slot string, fn func([]domain.CartLine) []domain.CartLine) error {
	mu := s.slotMutex(slot)
	mu.Lock()
	defer mu.Unlock()

	lines, err := s.repo.Load(ctx, slot)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, slot, fn(lines))
}

func (s *Service) slotMutex(slot string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.slots[slot]
	if !ok {
		mu = &sync.Mutex{}
		s.slots[slot] = mu
	}
	return mu
}
