package store

import (
	"sync"

	"github.com/backsoul/guesshuman/pkg/models"
)

// MemoryStore almacena las sesiones en memoria del proceso.
// Es el almacenamiento por defecto: perder las sesiones al reiniciar
// el proceso es aceptable para este juego.
type MemoryStore struct {
	sessions map[string]*models.GameSession
	mu       sync.RWMutex
}

// NewMemoryStore crea un almacén de sesiones en memoria
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.GameSession),
	}
}

// Create inserta una sesión nueva
func (s *MemoryStore) Create(session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return ErrSessionExists
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get devuelve una copia de la sesión para que el llamador pueda
// mutarla sin tocar lo almacenado hasta hacer Put
func (s *MemoryStore) Get(id string) (*models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Put reemplaza la sesión almacenada
func (s *MemoryStore) Put(session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Evict elimina la sesión
func (s *MemoryStore) Evict(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Count devuelve cuántas sesiones hay almacenadas
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
