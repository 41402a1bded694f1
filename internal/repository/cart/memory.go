package cart

import (
	"context"
	"sync"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu    sync.Mutex
	slots map[string][]domain.CartLine
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemory() *MemoryRepo {
	return &MemoryRepo{slots: make(map[string][]domain.CartLine)}
}

func (m *MemoryRepo) Load(_ context.Context, slot string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.slots[slot]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *MemoryRepo) Save(_ context.Context, slot string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.CartLine, len(lines))
	copy(cp, lines)
	m.slots[slot] = cp
	return nil
}

func (m *MemoryRepo) Clear(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}
