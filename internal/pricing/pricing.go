// Package pricing holds the money arithmetic shared by the cart and the
// checkout paths. Every function is pure.
package pricing

import (
	"errors"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/shopspring/decimal"
)

var ErrMissingShippingMethod = errors.New("shipping method is required")

const TaxRate = 0.06

var (
	taxRate         = decimal.NewFromFloat(TaxRate)
	hundred         = decimal.NewFromInt(100)
	priorityFreeMin = decimal.NewFromInt(100)
)

type Breakdown struct {
	CartPrice       float64 `json:"cart_price"`
	TaxPrice        float64 `json:"tax_price"`
	ShippingPrice   float64 `json:"shipping_price"`
	TotalOrderPrice float64 `json:"total_order_price"`
}

// Metadata freezes the breakdown together with the address so the webhook can
// rebuild the order without re-pricing.
func (b Breakdown) Metadata(method string, address models.ShippingAddress) models.SessionMetadata {
	return models.SessionMetadata{
		ShippingAddress: address,
		ShippingMethod:  method,
		CartPrice:       b.CartPrice,
		TaxPrice:        b.TaxPrice,
		ShippingPrice:   b.ShippingPrice,
		TotalOrderPrice: b.TotalOrderPrice,
	}
}

// RecalculateCart recomputes both cart totals from the lines. Any coupon
// discount previously applied is discarded.
func RecalculateCart(cart *models.Cart) {
	total := decimal.Zero
	discounted := decimal.Zero

	for _, item := range cart.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		price := decimal.NewFromFloat(item.Price)

		total = total.Add(price.Mul(qty))

		if item.PriceAfterDiscount != nil {
			price = decimal.NewFromFloat(*item.PriceAfterDiscount)
		}

		discounted = discounted.Add(price.Mul(qty))
	}

	cart.TotalCartPrice = total.Round(2).InexactFloat64()
	cart.SetDiscountedTotal(discounted.Round(2).InexactFloat64())
}

// ApplyCoupon takes percent off base, rounded to cents.
func ApplyCoupon(base, percent float64) float64 {
	b := decimal.NewFromFloat(base)
	off := b.Mul(decimal.NewFromFloat(percent)).Div(hundred)

	return b.Sub(off).Round(2).InexactFloat64()
}

func ShippingPrice(method string, cartPrice float64) float64 {
	switch method {
	case models.ShippingExpress:
		return 30
	case models.ShippingOvernight:
		return 15
	case models.ShippingPriority:
		if decimal.NewFromFloat(cartPrice).GreaterThan(priorityFreeMin) {
			return 0
		}

		return 5
	default:
		return 0
	}
}

func TaxPrice(cartPrice float64) float64 {
	return decimal.NewFromFloat(cartPrice).Mul(taxRate).Round(2).InexactFloat64()
}

// Quote prices a checkout. The shipping method is checked before anything
// else is computed.
func Quote(cartPrice float64, method string) (Breakdown, error) {
	if method == "" {
		return Breakdown{}, ErrMissingShippingMethod
	}

	tax := TaxPrice(cartPrice)
	shipping := ShippingPrice(method, cartPrice)

	total := decimal.NewFromFloat(cartPrice).
		Add(decimal.NewFromFloat(tax)).
		Add(decimal.NewFromFloat(shipping)).
		Round(2)

	return Breakdown{
		CartPrice:       cartPrice,
		TaxPrice:        tax,
		ShippingPrice:   shipping,
		TotalOrderPrice: total.InexactFloat64(),
	}, nil
}

// ToMinorUnits converts an amount to the processor's integer cents.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}
