package models_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_SetDiscountedTotal(t *testing.T) {
	t.Run("Equal to total is omitted", func(t *testing.T) {
		cart := &models.Cart{TotalCartPrice: 100}
		cart.SetDiscountedTotal(100)

		assert.Nil(t, cart.TotalPriceAfterDiscount)
		assert.Equal(t, 100.0, cart.EffectivePrice())

		body, err := json.Marshal(cart)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "total_price_after_discount")
	})

	t.Run("Lower than total is kept", func(t *testing.T) {
		cart := &models.Cart{TotalCartPrice: 100}
		cart.SetDiscountedTotal(90)

		require.NotNil(t, cart.TotalPriceAfterDiscount)
		assert.Equal(t, 90.0, *cart.TotalPriceAfterDiscount)
		assert.Equal(t, 90.0, cart.EffectivePrice())
	})
}

func TestCart_FindItemAndProductIDs(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	item := models.CartItem{ID: uuid.New(), ProductID: p1, Quantity: 1}
	cart := &models.Cart{Items: []models.CartItem{
		item,
		{ID: uuid.New(), ProductID: p1, Color: "red", Quantity: 2},
		{ID: uuid.New(), ProductID: p2, Quantity: 1},
	}}

	assert.Equal(t, 0, cart.FindItem(item.ID))
	assert.Equal(t, -1, cart.FindItem(uuid.New()))
	assert.Equal(t, []uuid.UUID{p1, p2}, cart.ProductIDs())
}

func TestCartItem_Matches(t *testing.T) {
	productID := uuid.New()
	item := models.CartItem{ProductID: productID, Color: "blue", Size: "M"}

	assert.True(t, item.Matches(productID, "blue", "M"))
	assert.False(t, item.Matches(productID, "red", "M"))
	assert.False(t, item.Matches(productID, "blue", "L"))
	assert.False(t, item.Matches(uuid.New(), "blue", "M"))
}

func TestSnapshotItems(t *testing.T) {
	discounted := 8.5
	orderID := uuid.New()
	cartItems := []models.CartItem{
		{
			ID:                 uuid.New(),
			ProductID:          uuid.New(),
			Product:            &models.ProductSummary{Title: "Mug"},
			Quantity:           2,
			Color:              "white",
			Price:              10,
			PriceAfterDiscount: &discounted,
		},
	}

	lines := models.SnapshotItems(orderID, cartItems)
	require.Len(t, lines, 1)

	assert.Equal(t, orderID, lines[0].OrderID)
	assert.Equal(t, cartItems[0].ProductID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "white", lines[0].Color)
	require.NotNil(t, lines[0].PriceAfterDiscount)

	// mutating the cart afterwards must not leak into the order
	*cartItems[0].PriceAfterDiscount = 1
	cartItems[0].Quantity = 99

	assert.Equal(t, 8.5, *lines[0].PriceAfterDiscount)
	assert.Equal(t, 2, lines[0].Quantity)
}
