package repository

import (
	"context"
	"sync"
	"time"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/session/domain"
)

// MemoryStore is an in-memory Store for tests and local development. It
// keeps insertion order so ListSessionsByUser matches the Postgres
// ordering contract.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  map[string]*sessionRow
	order []string
	now   func() time.Time
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[string]*sessionRow),
		now:  time.Now,
	}
}

func (s *MemoryStore) GetSession(ctx context.Context, handle string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[handle]
	if !ok {
		return nil, storeerr.ErrNotFound
	}
	return r.getSession(handle, s.now()), nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, in *domain.Session) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[in.Handle]; ok {
		return nil, storeerr.ErrConflict
	}
	r := &sessionRow{
		handle:             in.Handle,
		expiresAt:          nullTime(in.ExpiresAt),
		antiCSRFToken:      nullString(in.AntiCSRFToken),
		hashedSessionToken: nullString(in.HashedSessionToken),
		userID:             nullString(in.UserID),
		privateData:        nullString(in.PrivateData),
		publicData:         nullString(in.PublicData),
		data:               nullString(in.Data),
	}
	s.rows[in.Handle] = r
	s.order = append(s.order, in.Handle)
	return r.session(in.Handle), nil
}

func (s *MemoryStore) UpdateSession(ctx context.Context, handle, data string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[handle]
	if !ok {
		return nil, storeerr.ErrNotFound
	}
	r.data = nullString(data)
	return r.session(handle), nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, handle string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[handle]
	if !ok {
		return nil, storeerr.ErrNotFound
	}
	delete(s.rows, handle)
	for i, h := range s.order {
		if h == handle {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return r.session(handle), nil
}

func (s *MemoryStore) ListSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*domain.Session{}
	for _, h := range s.order {
		r := s.rows[h]
		if r.userID.Valid && r.userID.String == userID {
			out = append(out, r.session(r.handle))
		}
	}
	return out, nil
}
