package pricing_test

import (
	"testing"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/pricing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestRecalculateCart(t *testing.T) {
	t.Run("Sums quantity times price", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{
			{ProductID: uuid.New(), Quantity: 2, Price: 19.99},
			{ProductID: uuid.New(), Quantity: 3, Price: 0.1},
		}}

		pricing.RecalculateCart(cart)

		assert.Equal(t, 40.28, cart.TotalCartPrice)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
	})

	t.Run("Product discount sets discounted total", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{
			{ProductID: uuid.New(), Quantity: 2, Price: 50, PriceAfterDiscount: ptr(40)},
			{ProductID: uuid.New(), Quantity: 1, Price: 20},
		}}

		pricing.RecalculateCart(cart)

		assert.Equal(t, 120.0, cart.TotalCartPrice)
		require.NotNil(t, cart.TotalPriceAfterDiscount)
		assert.Equal(t, 100.0, *cart.TotalPriceAfterDiscount)
	})

	t.Run("Coupon discount is cleared by a mutation", func(t *testing.T) {
		cart := &models.Cart{
			Items:                   []models.CartItem{{ProductID: uuid.New(), Quantity: 1, Price: 100}},
			TotalCartPrice:          100,
			TotalPriceAfterDiscount: ptr(90),
		}

		pricing.RecalculateCart(cart)

		assert.Equal(t, 100.0, cart.TotalCartPrice)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
	})

	t.Run("Empty cart", func(t *testing.T) {
		cart := &models.Cart{}

		pricing.RecalculateCart(cart)

		assert.Zero(t, cart.TotalCartPrice)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
	})
}

func TestApplyCoupon_Compounds(t *testing.T) {
	first := pricing.ApplyCoupon(100, 10)
	second := pricing.ApplyCoupon(first, 10)

	assert.Equal(t, 90.0, first)
	assert.Equal(t, 81.0, second)
}

func TestApplyCoupon_RoundsToCents(t *testing.T) {
	assert.Equal(t, 66.66, pricing.ApplyCoupon(99.99, 33.33))
	assert.Equal(t, 0.0, pricing.ApplyCoupon(25, 100))
}

func TestTaxPrice(t *testing.T) {
	tests := []struct {
		cartPrice float64
		want      float64
	}{
		{40, 2.4},
		{10.10, 0.61},
		{33.33, 2},
		{0.05, 0},
		{0, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, pricing.TaxPrice(tc.cartPrice), tc.cartPrice)
	}
}

func TestShippingPrice(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		cartPrice float64
		want      float64
	}{
		{"Priority above threshold", models.ShippingPriority, 150, 0},
		{"Priority below threshold", models.ShippingPriority, 50, 5},
		{"Priority at threshold", models.ShippingPriority, 100, 5},
		{"Express cheap cart", models.ShippingExpress, 10, 30},
		{"Express expensive cart", models.ShippingExpress, 1000, 30},
		{"Overnight", models.ShippingOvernight, 10, 15},
		{"Standard", models.ShippingStandard, 10, 0},
		{"Unknown", "Drone", 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.ShippingPrice(tc.method, tc.cartPrice))
		})
	}
}

func TestQuote(t *testing.T) {
	t.Run("Standard checkout", func(t *testing.T) {
		quote, err := pricing.Quote(40, models.ShippingStandard)

		require.NoError(t, err)
		assert.Equal(t, 40.0, quote.CartPrice)
		assert.Equal(t, 2.4, quote.TaxPrice)
		assert.Equal(t, 0.0, quote.ShippingPrice)
		assert.Equal(t, 42.4, quote.TotalOrderPrice)
	})

	t.Run("Express checkout", func(t *testing.T) {
		quote, err := pricing.Quote(19.99, models.ShippingExpress)

		require.NoError(t, err)
		assert.Equal(t, 1.2, quote.TaxPrice)
		assert.Equal(t, 30.0, quote.ShippingPrice)
		assert.Equal(t, 51.19, quote.TotalOrderPrice)
	})

	t.Run("Tax rounded to cents", func(t *testing.T) {
		quote, err := pricing.Quote(10.10, models.ShippingStandard)

		require.NoError(t, err)
		assert.Equal(t, 0.61, quote.TaxPrice)
		assert.Equal(t, 10.71, quote.TotalOrderPrice)
		assert.Equal(t, int64(1071), pricing.ToMinorUnits(quote.TotalOrderPrice))
	})

	t.Run("Missing shipping method", func(t *testing.T) {
		quote, err := pricing.Quote(40, "")

		require.ErrorIs(t, err, pricing.ErrMissingShippingMethod)
		assert.Equal(t, pricing.Breakdown{}, quote)
	})
}

func TestBreakdown_Metadata(t *testing.T) {
	quote, err := pricing.Quote(150, models.ShippingPriority)
	require.NoError(t, err)

	address := models.ShippingAddress{City: "Pune", PostalCode: "411001"}
	meta := quote.Metadata(models.ShippingPriority, address)

	parsed, err := models.ParseSessionMetadata(meta.ToMap())
	require.NoError(t, err)
	assert.Equal(t, 159.0, parsed.TotalOrderPrice)
	assert.Equal(t, 9.0, parsed.TaxPrice)
	assert.Equal(t, 0.0, parsed.ShippingPrice)
	assert.Equal(t, address, parsed.ShippingAddress)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(4240), pricing.ToMinorUnits(42.4))
	assert.Equal(t, int64(5119), pricing.ToMinorUnits(51.19))
	assert.Equal(t, int64(1), pricing.ToMinorUnits(0.005))
	assert.Equal(t, int64(0), pricing.ToMinorUnits(0))
}
