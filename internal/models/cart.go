package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSummary is the read-side projection of a product attached to a cart
// line. It is never persisted with the cart document.
type ProductSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ImageCover string    `json:"image_cover,omitempty"`
}

type CartItem struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          uuid.UUID       `json:"product_id"`
	Product            *ProductSummary `json:"product,omitempty"`
	Quantity           int             `json:"quantity"`
	Color              string          `json:"color,omitempty"`
	Size               string          `json:"size,omitempty"`
	Price              float64         `json:"price"`
	PriceAfterDiscount *float64        `json:"price_after_discount,omitempty"`
}

// Matches reports whether the line holds the same product variant.
func (i *CartItem) Matches(productID uuid.UUID, color, size string) bool {
	return i.ProductID == productID && i.Color == color && i.Size == size
}

type Cart struct {
	ID                      uuid.UUID  `json:"id"`
	UserID                  uuid.UUID  `json:"user_id"`
	Items                   []CartItem `json:"cart_items"`
	TotalCartPrice          float64    `json:"total_cart_price"`
	TotalPriceAfterDiscount *float64   `json:"total_price_after_discount,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []CartItem{},
	}
}

// EffectivePrice is the amount a checkout should charge for the cart lines.
func (c *Cart) EffectivePrice() float64 {
	if c.TotalPriceAfterDiscount != nil {
		return *c.TotalPriceAfterDiscount
	}

	return c.TotalCartPrice
}

// SetDiscountedTotal stores the discounted total, leaving it unset when it
// equals the plain total.
func (c *Cart) SetDiscountedTotal(amount float64) {
	if amount == c.TotalCartPrice {
		c.TotalPriceAfterDiscount = nil
		return
	}

	c.TotalPriceAfterDiscount = &amount
}

func (c *Cart) FindItem(itemID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}

	return -1
}

func (c *Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c.Items))
	ids := make([]uuid.UUID, 0, len(c.Items))

	for _, item := range c.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}

		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Color     string    `json:"color"      validate:"omitempty,max=50"`
	Size      string    `json:"size"       validate:"omitempty,max=20"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ApplyCouponRequest struct {
	Coupon string `json:"coupon" validate:"required,max=100"`
}
