package product

import (
	"errors"
	"net/http"
	"strconv"

	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/handlers"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *catalog.Catalog
}

func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

type listQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	MinPrice *int64 `form:"minPrice"`
	MaxPrice *int64 `form:"maxPrice"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	PerPage  int    `form:"perPage"`
}

// 🔵 GET /api/products
func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	page, err := h.catalog.Search(catalog.Query{
		Search:   q.Search,
		Category: q.Category,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Sort:     q.Sort,
		Page:     q.Page,
		PerPage:  q.PerPage,
	})
	if err != nil {
		handlers.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// 🔵 GET /api/products/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handlers.BadRequest(c, errors.New("invalid product id"))
		return
	}
	p, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Categories)
}

func (h *Handler) Partners(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Partners)
}
