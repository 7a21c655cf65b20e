// Package pricing holds the single order-total calculation shared by the
// cart, checkout, admin edit and snapshot paths.
package pricing

import (
	"furniture_back_end/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DiscountCode = "DISCOUNT10"

	// FreeFloors is the highest floor delivered without surcharge.
	FreeFloors = 3
	// Places is the number of decimal places a total is rounded to.
	Places = 2
)

var (
	floorRate      = decimal.RequireFromString("0.01")
	discountFactor = decimal.RequireFromString("0.9")
)

type Line struct {
	ProductID   int             `json:"productId"`
	FloorCharge decimal.Decimal `json:"floorCharge"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// FloorCharge is the per-unit delivery surcharge: 1% of the price for each
// floor above the third when there is no elevator.
func FloorCharge(item models.LineItem) decimal.Decimal {
	if item.HasElevator || item.Floor <= FreeFloors {
		return decimal.Zero
	}
	extra := decimal.NewFromInt(int64(item.Floor - FreeFloors))
	return extra.Mul(floorRate).Mul(item.Price)
}

// LineSubtotal is (price + floor charge) * quantity.
func LineSubtotal(item models.LineItem) decimal.Decimal {
	return item.Price.Add(FloorCharge(item)).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Breakdown computes every intermediate figure. Only Total is rounded.
func Breakdown(items []models.LineItem, discountApplied bool) Summary {
	s := Summary{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}
	for _, item := range items {
		sub := LineSubtotal(item)
		s.Lines = append(s.Lines, Line{
			ProductID:   item.ProductID,
			FloorCharge: FloorCharge(item),
			Subtotal:    sub,
		})
		s.Subtotal = s.Subtotal.Add(sub)
	}

	exact := s.Subtotal
	if discountApplied {
		exact = s.Subtotal.Mul(discountFactor)
		s.Discount = s.Subtotal.Sub(exact)
	}
	s.Total = exact.Round(Places)
	return s
}

// Total is computeTotal: sum of line subtotals, minus 10% when discounted,
// rounded half away from zero to cents.
func Total(items []models.LineItem, discountApplied bool) decimal.Decimal {
	return Breakdown(items, discountApplied).Total
}

// IsDiscountCode reports whether code unlocks the discount. Exact,
// case-sensitive match.
func IsDiscountCode(code string) bool {
	return code == DiscountCode
}
