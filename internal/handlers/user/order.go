package user

import (
	"net/http"

	"furniture_back_end/internal/handlers"
	"furniture_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/orders
func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.orders.ListMine(middleware.SessionID(c))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id accepts an order id or its display number.
func (h *Handler) MyOrder(c *gin.Context) {
	order, err := h.orders.GetMine(middleware.SessionID(c), c.Param("id"))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/:id/snapshot
func (h *Handler) MyOrderSnapshot(c *gin.Context) {
	u, err := h.auth.Me(middleware.SessionID(c))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	snap, err := h.snapshots.ExportFor(c.Request.Context(), c.Param("id"), u.Phone)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	handlers.Snapshot(c, snap)
}
