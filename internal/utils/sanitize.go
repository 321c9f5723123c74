package utils

import (
	"strings"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

func SanitizeAddress(a models.ShippingAddress) models.ShippingAddress {
	return models.ShippingAddress{
		Details:    SanitizeText(a.Details),
		Phone:      SanitizeText(a.Phone),
		City:       SanitizeText(a.City),
		PostalCode: SanitizeText(a.PostalCode),
	}
}
