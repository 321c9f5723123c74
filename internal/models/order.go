package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethodType string

const (
	PaymentMethodCash PaymentMethodType = "cash"
	PaymentMethodCard PaymentMethodType = "card"
)

const (
	ShippingStandard  = "Standard"
	ShippingExpress   = "Express"
	ShippingOvernight = "Overnight"
	ShippingPriority  = "Priority"
)

type ShippingAddress struct {
	Details    string `json:"details"     validate:"max=500"`
	Phone      string `json:"phone"       validate:"max=30"`
	City       string `json:"city"        validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
}

type OrderItem struct {
	ID                 uuid.UUID `json:"id"`
	OrderID            uuid.UUID `json:"order_id"`
	ProductID          uuid.UUID `json:"product_id"`
	Quantity           int       `json:"quantity"`
	Color              string    `json:"color,omitempty"`
	Size               string    `json:"size,omitempty"`
	Price              float64   `json:"price"`
	PriceAfterDiscount *float64  `json:"price_after_discount,omitempty"`
}

type Order struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	Items             []OrderItem       `json:"cart_items"`
	ShippingAddress   ShippingAddress   `json:"shipping_address"`
	ShippingMethod    string            `json:"shipping_method"`
	ShippingPrice     float64           `json:"shipping_price"`
	TaxPrice          float64           `json:"tax_price"`
	TotalOrderPrice   float64           `json:"total_order_price"`
	PaymentMethodType PaymentMethodType `json:"payment_method_type"`
	CheckoutSessionID *string           `json:"checkout_session_id,omitempty"`
	IsPaid            bool              `json:"is_paid"`
	PaidAt            *time.Time        `json:"paid_at,omitempty"`
	IsDelivered       bool              `json:"is_delivered"`
	DeliveredAt       *time.Time        `json:"delivered_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// SnapshotItems deep-copies cart lines into order lines. The hydrated product
// summary is dropped and pointer fields are re-allocated so later cart edits
// cannot reach the order.
func SnapshotItems(orderID uuid.UUID, items []CartItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))

	for _, item := range items {
		line := OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			Price:     item.Price,
		}

		if item.PriceAfterDiscount != nil {
			v := *item.PriceAfterDiscount
			line.PriceAfterDiscount = &v
		}

		out = append(out, line)
	}

	return out
}

type CreateCashOrderRequest struct {
	ShippingMethod  string          `json:"shipping_method"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}
