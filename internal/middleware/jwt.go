package middleware

import (
	"context"
	"net/http"
	"strings"

	"furniture_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

const adminClaimsKey = "admin_claims"

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.AdminClaims, error)
}

// AdminAuth checks the bearer token and stores its claims on the context.
func AdminAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed Authorization header"})
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Set("role", claims.Role)
		c.Set("username", claims.Subject)
		c.Next()
	}
}

func AdminClaims(c *gin.Context) *utils.AdminClaims {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.AdminClaims)
	return claims
}
