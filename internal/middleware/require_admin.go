package middleware

import (
	"net/http"

	"furniture_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects requests whose token does not carry the admin role.
func RequireAdmin(c *gin.Context) {
	if c.GetString("role") != utils.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	c.Next()
}
