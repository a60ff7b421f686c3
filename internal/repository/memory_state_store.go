package repository

import (
	"context"
	"sync"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
)

// MemoryStateStore keeps tracker state in process memory. Used when Redis is
// not configured, typically in development.
type MemoryStateStore struct {
	mu    sync.Mutex
	state models.RegimeTrackerState
	set   bool
}

func NewMemoryStateStore() domrepo.StateStore {
	return &MemoryStateStore{}
}

func (s *MemoryStateStore) Load(ctx context.Context) (models.RegimeTrackerState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.set, nil
}

func (s *MemoryStateStore) Save(ctx context.Context, state models.RegimeTrackerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.set = true
	return nil
}
