// Package handlers holds the HTTP layer shared by the product, user and
// admin handler packages.
package handlers

import (
	"errors"
	"net/http"

	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/services"
	"furniture_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// LoginPath is where the front end sends a member who must sign in.
const LoginPath = "/login"

// Error writes the JSON error body for err and records err on the context
// for the request logger.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *services.ValidationError
	var qe *catalog.QueryError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.As(err, &qe):
		c.JSON(http.StatusBadRequest, gin.H{"error": qe.Error(), "field": qe.Field})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "請先登入", "redirect": LoginPath})
	case errors.Is(err, services.ErrInvalidDiscountCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的折扣碼"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, services.ErrMissingExportTarget), errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotEditing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrRendererDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order snapshots are disabled on this server"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// BadRequest answers a body or parameter that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Snapshot answers with the archive link when there is one, otherwise with
// the PNG as a download.
func Snapshot(c *gin.Context, snap services.Snapshot) {
	if snap.URL != "" {
		c.JSON(http.StatusOK, snap)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+snap.FileName+`"`)
	c.Data(http.StatusOK, "image/png", snap.PNG)
}
