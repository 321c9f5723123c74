package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment records one hosted checkout session. Its ID is the processor's
// session id, which is also the key webhook deliveries are deduplicated on.
type Payment struct {
	ID        string        `json:"id"`
	CartID    uuid.UUID     `json:"cart_id"`
	UserID    uuid.UUID     `json:"user_id"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CheckoutSessionRequest struct {
	ShippingMethod string `validate:"max=50"`
	Details        string `validate:"max=500"`
	Phone          string `validate:"max=30"`
	City           string `validate:"max=100"`
	PostalCode     string `validate:"max=20"`
}

func (r *CheckoutSessionRequest) Address() ShippingAddress {
	return ShippingAddress{
		Details:    r.Details,
		Phone:      r.Phone,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type WebhookOutcome string

const (
	WebhookIgnored   WebhookOutcome = "ignored"
	WebhookCompleted WebhookOutcome = "completed"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookFailed    WebhookOutcome = "failed"
)

type WebhookResult struct {
	EventType string         `json:"-"`
	Outcome   WebhookOutcome `json:"-"`
	OrderID   *uuid.UUID     `json:"-"`
	Received  bool           `json:"received"`
}
