package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

// MemoryStore store de sesiones en proceso; se usa cuando no hay Redis configurado.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	now      func() time.Time
}

var _ repository.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entity.Session), now: time.Now}
}

// Save guarda la sesión y purga las vencidas. Una sesión ya vencida devuelve ErrInvalidInput.
func (s *MemoryStore) Save(_ context.Context, sess *entity.Session) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	now := s.now()
	if sess.Expired(now) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cur := range s.sessions {
		if cur.Expired(now) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = *sess
	return nil
}

// Len número de sesiones guardadas, vencidas incluidas.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Get devuelve una copia de la sesión; vencida o inexistente → ErrSessionNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Delete elimina la sesión; inexistente → ErrSessionNotFound.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
