package session

import (
	"context"
	"sync"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]Session
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemory() *MemoryRepo {
	return &MemoryRepo{sessions: make(map[string]Session)}
}

func (m *MemoryRepo) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.Token]; ok {
		return ErrAlreadyExists
	}
	m.sessions[s.Token] = s
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryRepo) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, token)
	return nil
}
