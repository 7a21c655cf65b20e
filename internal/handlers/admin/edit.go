package admin

import (
	"net/http"

	"furniture_back_end/internal/handlers"
	"furniture_back_end/internal/models"
	"furniture_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Edit flow: viewing -> editing -> saved | cancelled. Every draft change
// answers with the draft and its recomputed total.

// POST /api/admin/orders/:id/edit
func (h *Handler) BeginEdit(c *gin.Context) {
	h.respond(c)(h.admin.BeginEdit(c.Param("id")))
}

// GET /api/admin/orders/:id/draft
func (h *Handler) Draft(c *gin.Context) {
	h.respond(c)(h.admin.Draft(c.Param("id")))
}

// PATCH /api/admin/orders/:id/draft
func (h *Handler) UpdateDraft(c *gin.Context) {
	var p services.DraftInfoPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	h.respond(c)(h.admin.UpdateDraftInfo(c.Param("id"), p))
}

// PATCH /api/admin/orders/:id/draft/items/:index
func (h *Handler) UpdateDraftItem(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var p services.ItemPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	h.respond(c)(h.admin.UpdateDraftItem(c.Param("id"), index, p))
}

// POST /api/admin/orders/:id/draft/items
func (h *Handler) AddDraftItem(c *gin.Context) {
	var item services.NewItem
	if err := c.ShouldBindJSON(&item); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	h.respond(c)(h.admin.AddDraftItem(c.Param("id"), item))
}

// DELETE /api/admin/orders/:id/draft/items/:index
func (h *Handler) RemoveDraftItem(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	h.respond(c)(h.admin.RemoveDraftItem(c.Param("id"), index))
}

// POST /api/admin/orders/:id/save
func (h *Handler) Save(c *gin.Context) {
	h.respond(c)(h.admin.Save(c.Param("id")))
}

// POST /api/admin/orders/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.respond(c)(h.admin.Cancel(c.Param("id")))
}

func (h *Handler) respond(c *gin.Context) func(*models.Order, error) {
	return func(o *models.Order, err error) {
		if err != nil {
			handlers.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
