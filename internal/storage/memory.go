package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps runs in a map. Used in tests and when the server runs
// without a database.
type MemoryStore struct {
	runs map[uuid.UUID]*SimulationRun
	mu   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID]*SimulationRun)}
}

func (s *MemoryStore) SaveRun(ctx context.Context, run *SimulationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(ctx context.Context, id uuid.UUID) (*SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]*SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*SimulationRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
