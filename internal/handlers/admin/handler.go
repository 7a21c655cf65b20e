package admin

import (
	"errors"
	"net/http"
	"strconv"

	"furniture_back_end/internal/handlers"
	"furniture_back_end/internal/middleware"
	"furniture_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the back office.
type Handler struct {
	admin     *services.AdminService
	snapshots *services.SnapshotService
}

func NewHandler(admin *services.AdminService, snapshots *services.SnapshotService) *Handler {
	return &Handler{admin: admin, snapshots: snapshots}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	tok, err := h.admin.Login(req.Username, req.Password)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

// POST /api/admin/logout
func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.AdminClaims(c)
	if claims == nil {
		handlers.Error(c, services.ErrNotAuthenticated)
		return
	}
	if err := h.admin.Logout(c.Request.Context(), claims); err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type pageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// GET /api/admin/orders
func (h *Handler) ListOrders(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.admin.ListOrders(q.Page, q.PageSize))
}

// GET /api/admin/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.admin.GetOrder(c.Param("id"))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DELETE /api/admin/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.admin.DeleteOrder(c.Param("id")); err != nil {
		handlers.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/admin/stats
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.Stats())
}

// GET /api/admin/orders/:id/snapshot
func (h *Handler) Snapshot(c *gin.Context) {
	snap, err := h.snapshots.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	handlers.Snapshot(c, snap)
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		handlers.BadRequest(c, errors.New("invalid item index"))
		return 0, false
	}
	return i, true
}
