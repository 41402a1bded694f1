package product

import (
	"context"
	"sync"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// MemoryRepo is an in-memory Repository used by tests and by the seed and
// migration unit tests. Safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]domain.Product
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemory() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]domain.Product)}
}

func (m *MemoryRepo) GetAll(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.records))
	for _, p := range m.records {
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryRepo) Put(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[p.ID] = p
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *MemoryRepo) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]domain.Product)
	return nil
}

func (m *MemoryRepo) ReplaceAll(_ context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]domain.Product, len(products))
	for _, p := range products {
		m.records[p.ID] = p
	}
	return nil
}
