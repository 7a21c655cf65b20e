package database

import (
	"sync"

	"furniture_back_end/internal/models"
)

// OrderStore is the in-memory order list, kept in submission order.
type OrderStore struct {
	mu     sync.RWMutex
	orders []*models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func (s *OrderStore) Add(o *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o.Clone())
}

func (s *OrderStore) Get(id string) (*models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.orders[i].Clone(), true
	}
	return nil, false
}

// GetByNumber returns the most recent order carrying the display number.
func (s *OrderStore) GetByNumber(number string) (*models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].Number == number {
			return s.orders[i].Clone(), true
		}
	}
	return nil, false
}

func (s *OrderStore) List(page, pageSize int) ([]models.Order, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.orders)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = total
	}
	start := total
	if pageSize > 0 && page-1 < total/pageSize+1 {
		start = min((page-1)*pageSize, total)
	}
	end := start + min(pageSize, total-start)
	out := make([]models.Order, 0, end-start)
	for _, o := range s.orders[start:end] {
		out = append(out, *o.Clone())
	}
	return out, total
}

func (s *OrderStore) ListByPhone(phone string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserPhone == phone {
			out = append(out, *o.Clone())
		}
	}
	return out
}

// Replace swaps the stored order with the same id.
func (s *OrderStore) Replace(o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(o.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.orders[i] = o.Clone()
	return nil
}

func (s *OrderStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return nil
}

func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *OrderStore) index(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
