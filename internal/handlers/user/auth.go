package user

import (
	"net/http"

	"furniture_back_end/internal/handlers"
	"furniture_back_end/internal/middleware"
	"furniture_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var in services.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	u, err := h.auth.Login(middleware.SessionID(c), in)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	u, err := h.auth.Register(middleware.SessionID(c), in)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(middleware.SessionID(c)); err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	u, err := h.auth.Me(middleware.SessionID(c))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
