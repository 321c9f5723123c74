package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	PriceAfterDiscount *float64  `json:"price_after_discount,omitempty"`
	Quantity           int       `json:"quantity"`
	Sold               int       `json:"sold"`
	ImageCover         string    `json:"image_cover,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{ID: p.ID, Title: p.Title, ImageCover: p.ImageCover}
}

// InventoryAdjustment is the net stock movement for one product.
type InventoryAdjustment struct {
	ProductID uuid.UUID
	Quantity  int
}
