package repository

import (
	"context"
	"sync"
	"time"

	"iot-capstone/backend/internal/telemetry/domain"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []*domain.Reading
	nextID   int64
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory reading store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: time.Now}
}

func (s *MemoryStore) SaveReading(ctx context.Context, r *domain.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	r.CreatedAt = s.now()
	stored := *r
	s.readings = append(s.readings, &stored)
	return nil
}

func (s *MemoryStore) ListReadings(ctx context.Context) ([]*domain.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Reading, 0, len(s.readings))
	for _, r := range s.readings {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}
