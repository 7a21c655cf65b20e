package database

import (
	"sync"

	"furniture_back_end/internal/models"
)

// CartStore keeps one cart per session id. Callers only ever see copies;
// mutations go through Update so they run under the store lock.
type CartStore struct {
	mu sync.Mutex
	m  map[string]*models.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{m: make(map[string]*models.Cart)}
}

func (s *CartStore) Get(sessionID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[sessionID].Clone()
}

// Update applies fn to the session cart. The change is kept only when fn
// returns nil.
func (s *CartStore) Update(sessionID string, fn func(*models.Cart) error) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.m[sessionID].Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	s.m[sessionID] = work
	return work.Clone(), nil
}

func (s *CartStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.m, sessionID)
	s.mu.Unlock()
}
