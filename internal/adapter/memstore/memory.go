package memstore

import (
	"fmt"
	"sync"

	"codechat/internal/domain"
)

// MemoryStore keeps chat transcripts in process memory only.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.ChatTurn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]domain.ChatTurn),
	}
}

func (s *MemoryStore) Create(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; ok {
		return fmt.Errorf("session already exists: %s", sessionID)
	}
	s.sessions[sessionID] = nil
	return nil
}

func (s *MemoryStore) Exists(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Append adds turns atomically, so a user turn and its reply stay adjacent.
func (s *MemoryStore) Append(sessionID string, turns ...domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	s.sessions[sessionID] = append(existing, turns...)
	return nil
}

// Transcript returns a copy of the session's turns in order.
func (s *MemoryStore) Transcript(sessionID string) ([]domain.ChatTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	out := make([]domain.ChatTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
