package models

import "github.com/shopspring/decimal"

// LineItem is one product plus its delivery attributes. Floor and elevator
// drive the floor surcharge.
type LineItem struct {
	ProductID   int             `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Floor       int             `json:"floor"`
	HasElevator bool            `json:"hasElevator"`
}

type Cart struct {
	Items           []LineItem `json:"items"`
	DiscountApplied bool       `json:"discountApplied"`
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return &Cart{Items: []LineItem{}}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items, DiscountApplied: c.DiscountApplied}
}

// Index returns the position of the line for productID, or -1.
func (c *Cart) Index(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
