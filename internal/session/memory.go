package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Session
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Session),
		now:   time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint, ttl time.Duration) (Session, error) {
	item := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	}

	s.mu.Lock()
	s.items[item.Token] = item
	s.mu.Unlock()

	return item, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	now := s.now()

	s.mu.RLock()
	item, ok := s.items[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	// Expired entries are reaped lazily on access.
	if !item.ExpiresAt.After(now) {
		s.mu.Lock()
		current, ok := s.items[token]
		if ok && !current.ExpiresAt.After(now) {
			delete(s.items, token)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	return &item, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.items, token)
	s.mu.Unlock()
	return nil
}
