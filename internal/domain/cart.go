package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product-quantity pairing held in a cart
type CartLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Shipping  string          `json:"shipping"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"image,omitempty"`
}

// Subtotal returns unit price times quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotals holds the monetary aggregates of a cart
type CartTotals struct {
	ItemTotal   decimal.Decimal `json:"item_total"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Cart is the in-session cart of a single owner
type Cart struct {
	Owner  string     `json:"owner"`
	Lines  []CartLine `json:"lines"`
	Totals CartTotals `json:"totals"`
}

// Order status values
const (
	OrderStatusProcessing = "Processing"
	OrderStatusInTransit  = "In Transit"
	OrderStatusDelivered  = "Delivered"
)

// Order is a checked-out cart
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"order_number"`
	Owner     string          `json:"-"`
	Lines     []CartLine      `json:"lines"`
	Items     int             `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
