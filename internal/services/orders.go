package services

import (
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"
)

// OrderService is the member-facing order history.
type OrderService struct {
	orders   *database.OrderStore
	sessions *database.SessionStore
}

func NewOrderService(orders *database.OrderStore, sessions *database.SessionStore) *OrderService {
	return &OrderService{orders: orders, sessions: sessions}
}

// ListMine returns the orders placed by the signed-in member, oldest first.
func (s *OrderService) ListMine(sessionID string) ([]models.Order, error) {
	u, err := s.user(sessionID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByPhone(u.Phone), nil
}

// GetMine looks an order up by id or display number. Orders of other
// members are reported as not found.
func (s *OrderService) GetMine(sessionID, ref string) (*models.Order, error) {
	u, err := s.user(sessionID)
	if err != nil {
		return nil, err
	}
	o, ok := lookupOrder(s.orders, ref)
	if !ok || o.UserPhone != u.Phone {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *OrderService) user(sessionID string) (models.User, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.User == nil {
		return models.User{}, ErrNotAuthenticated
	}
	return *sess.User, nil
}

func lookupOrder(store *database.OrderStore, ref string) (*models.Order, bool) {
	if o, ok := store.Get(ref); ok {
		return o, true
	}
	return store.GetByNumber(ref)
}
