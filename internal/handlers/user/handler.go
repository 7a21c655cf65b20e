package user

import (
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/services"

	"go.uber.org/zap"
)

// Handler serves the member side: auth, cart, live cart and order history.
type Handler struct {
	auth      *services.AuthService
	cart      *services.CartService
	orders    *services.OrderService
	snapshots *services.SnapshotService
	notifier  cache.Notifier
	log       *zap.Logger
	tick      time.Duration
}

type Deps struct {
	Auth      *services.AuthService
	Cart      *services.CartService
	Orders    *services.OrderService
	Snapshots *services.SnapshotService
	Notifier  cache.Notifier
	Log       *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		auth:      d.Auth,
		cart:      d.Cart,
		orders:    d.Orders,
		snapshots: d.Snapshots,
		notifier:  d.Notifier,
		log:       d.Log,
		tick:      time.Second,
	}
}
