package user

import (
	"errors"
	"net/http"
	"strconv"

	"furniture_back_end/internal/handlers"
	"furniture_back_end/internal/middleware"
	"furniture_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

type discountRequest struct {
	Code string `json:"code"`
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart.View(middleware.SessionID(c)))
}

// POST /api/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	view, err := h.cart.AddItem(c.Request.Context(), middleware.SessionID(c), req.ProductID)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PATCH /api/cart/items/:productId
func (h *Handler) UpdateItem(c *gin.Context) {
	productID, ok := productParam(c)
	if !ok {
		return
	}
	var req services.LineUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	if req.Quantity == nil && req.Floor == nil && req.HasElevator == nil {
		handlers.BadRequest(c, errors.New("nothing to update"))
		return
	}
	view, err := h.cart.UpdateItem(c.Request.Context(), middleware.SessionID(c), productID, req)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart/items/:productId
func (h *Handler) RemoveItem(c *gin.Context) {
	productID, ok := productParam(c)
	if !ok {
		return
	}
	view, err := h.cart.RemoveItem(c.Request.Context(), middleware.SessionID(c), productID)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	view, err := h.cart.Clear(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/cart/discount
func (h *Handler) ApplyDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	view, err := h.cart.ApplyDiscount(c.Request.Context(), middleware.SessionID(c), req.Code)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart/discount
func (h *Handler) RemoveDiscount(c *gin.Context) {
	view, err := h.cart.RemoveDiscount(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/cart/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var form services.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	order, err := h.cart.Submit(c.Request.Context(), middleware.SessionID(c), form)
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func productParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		handlers.BadRequest(c, errors.New("invalid product id"))
		return 0, false
	}
	return id, true
}
