package store

import (
	"context"
	"sync"
	"time"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// MemoryStore implements Store with a mutex-guarded map. It is the default
// driver: sessions live only as long as the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

func (s *MemoryStore) Put(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	stored.UpdatedAt = time.Now().UTC()
	s.sessions[session.ID] = stored
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := stored
	return &out, nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
