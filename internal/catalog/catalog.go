// Package catalog generates the fixed product list at startup and answers
// filter/sort/page queries against it.
package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"furniture_back_end/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultSize    = 100
	DefaultPerPage = 30
	MaxPerPage     = 100

	SortAsc  = "asc"
	SortDesc = "desc"

	minPrice   = 5000
	priceRange = 20000
)

var Categories = []string{"客廳", "餐廳", "臥室", "書房"}

type Catalog struct {
	products []models.Product
	byID     map[int]models.Product
}

type Query struct {
	Search   string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
	Page     int
	PerPage  int
}

type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

// QueryError is returned for malformed query parameters.
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string { return e.Field + ": " + e.Message }

// Generate builds n products from seed. The catalog is immutable afterwards.
func Generate(n int, seed int64) *Catalog {
	rng := rand.New(rand.NewSource(seed))
	products := make([]models.Product, 0, max(n, 0))
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			ID:          i + 1,
			Name:        fmt.Sprintf("產品 %d", i+1),
			Category:    Categories[rng.Intn(len(Categories))],
			Price:       decimal.NewFromInt(int64(rng.Intn(priceRange) + minPrice)),
			Image:       fmt.Sprintf("https://source.unsplash.com/featured/?furniture&%d", i),
			Description: "高品質傢俱，舒適耐用",
		})
	}
	return New(products)
}

func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[int]models.Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

func (c *Catalog) Get(id int) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) Search(q Query) (Page, error) {
	if q.Sort == "" {
		q.Sort = SortAsc
	}
	if q.Sort != SortAsc && q.Sort != SortDesc {
		return Page{}, &QueryError{Field: "sort", Message: "must be asc or desc"}
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return Page{}, &QueryError{Field: "minPrice", Message: "must not be negative"}
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return Page{}, &QueryError{Field: "maxPrice", Message: "must not be negative"}
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price.LessThan(decimal.NewFromInt(*q.MinPrice)) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(decimal.NewFromInt(*q.MaxPrice)) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if q.Sort == SortDesc {
			return matched[i].Price.GreaterThan(matched[j].Price)
		}
		return matched[i].Price.LessThan(matched[j].Price)
	})

	total := len(matched)
	pages := (total + q.PerPage - 1) / q.PerPage
	start := total
	if q.Page-1 < total/q.PerPage+1 {
		start = min((q.Page-1)*q.PerPage, total)
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}

	return Page{
		Items:      matched[start:end],
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: pages,
	}, nil
}
