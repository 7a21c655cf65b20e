package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCash     = "現金"
	PaymentTransfer = "轉帳"
	PaymentCard     = "刷卡"

	DisposalFree = "free"
	DisposalPaid = "paid"
)

var (
	PaymentMethods = []string{PaymentCash, PaymentTransfer, PaymentCard}
	DeliverySlots  = []string{"平日", "假日", "早上", "下午", "晚上"}
)

type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	LineID  string `json:"lineId"`
}

// Order is the snapshot taken at checkout. Total always matches
// pricing.Total(Items, DiscountApplied).
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	UserPhone       string          `json:"userPhone"`
	Items           []LineItem      `json:"items"`
	Customer        CustomerDetails `json:"customerDetails"`
	PaymentMethod   string          `json:"paymentMethod"`
	DeliveryTime    []string        `json:"deliveryTime"`
	OldFurniture    string          `json:"oldFurniture"`
	DisposalMethod  string          `json:"disposalMethod"`
	DiscountApplied bool            `json:"discountApplied"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy so stores and drafts never share slices.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = make([]LineItem, len(o.Items))
	copy(cp.Items, o.Items)
	cp.DeliveryTime = make([]string, len(o.DeliveryTime))
	copy(cp.DeliveryTime, o.DeliveryTime)
	return &cp
}

// DisposalLabel returns the customer-facing label for a disposal method.
func DisposalLabel(method string) string {
	switch method {
	case DisposalFree:
		return "(免費)放置屋外由清潔隊清運"
	case DisposalPaid:
		return "(自費)由送貨人員代清運"
	default:
		return method
	}
}
