package models

import (
	"fmt"
	"strconv"
)

const (
	metaDetails         = "details"
	metaPhone           = "phone"
	metaCity            = "city"
	metaPostalCode      = "postalCode"
	metaShippingMethod  = "shippingMethod"
	metaCartPrice       = "cartPrice"
	metaTaxPrice        = "taxPrice"
	metaShippingPrice   = "shippingPrice"
	metaTotalOrderPrice = "totalOrderPrice"
)

// SessionMetadata is the pricing and address snapshot frozen into a hosted
// checkout session. The webhook rebuilds the order from it.
type SessionMetadata struct {
	ShippingAddress ShippingAddress
	ShippingMethod  string
	CartPrice       float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalOrderPrice float64
}

func (m SessionMetadata) ToMap() map[string]string {
	return map[string]string{
		metaDetails:         m.ShippingAddress.Details,
		metaPhone:           m.ShippingAddress.Phone,
		metaCity:            m.ShippingAddress.City,
		metaPostalCode:      m.ShippingAddress.PostalCode,
		metaShippingMethod:  m.ShippingMethod,
		metaCartPrice:       formatAmount(m.CartPrice),
		metaTaxPrice:        formatAmount(m.TaxPrice),
		metaShippingPrice:   formatAmount(m.ShippingPrice),
		metaTotalOrderPrice: formatAmount(m.TotalOrderPrice),
	}
}

func ParseSessionMetadata(meta map[string]string) (SessionMetadata, error) {
	out := SessionMetadata{
		ShippingAddress: ShippingAddress{
			Details:    meta[metaDetails],
			Phone:      meta[metaPhone],
			City:       meta[metaCity],
			PostalCode: meta[metaPostalCode],
		},
		ShippingMethod: meta[metaShippingMethod],
	}

	amounts := []struct {
		key  string
		dest *float64
	}{
		{metaCartPrice, &out.CartPrice},
		{metaTaxPrice, &out.TaxPrice},
		{metaShippingPrice, &out.ShippingPrice},
		{metaTotalOrderPrice, &out.TotalOrderPrice},
	}

	for _, a := range amounts {
		raw, ok := meta[a.key]
		if !ok || raw == "" {
			return SessionMetadata{}, fmt.Errorf("session metadata missing %s", a.key)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return SessionMetadata{}, fmt.Errorf("session metadata %s: %w", a.key, err)
		}

		*a.dest = v
	}

	return out, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
