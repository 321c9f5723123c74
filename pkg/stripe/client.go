package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Event           = stripe.Event
	CheckoutSession = stripe.CheckoutSession
)

const EventCheckoutSessionCompleted = string(stripe.EventTypeCheckoutSessionCompleted)

var ErrWebhookSecretMissing = errors.New("webhook secret not configured")

// CheckoutSessionInput describes a single line hosted checkout for a whole
// cart. Amount is in minor currency units.
type CheckoutSessionInput struct {
	ClientReferenceID string
	CustomerEmail     string
	ProductName       string
	Amount            int64
	Currency          string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// defines the methods that any of payment client must implement.
type Client interface {
	CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

func (s *stripeClient) CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(in.ClientReferenceID),
		SuccessURL:        stripe.String(in.SuccessURL),
		CancelURL:         stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(in.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}

	for key, value := range in.Metadata {
		params.AddMetadata(key, value)
	}

	cs, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return cs, nil
}

// VerifyWebhookSignature checks the signature header against the endpoint
// secret and decodes the event.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookSecretMissing
	}

	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	if _, err := balance.Get(params); err != nil {
		return fmt.Errorf("failed to connect to stripe: %w", err)
	}

	return nil
}

// SessionFromEvent decodes the checkout session carried by an event.
func SessionFromEvent(event Event) (*CheckoutSession, error) {
	if event.Data == nil {
		return nil, errors.New("event has no data")
	}

	var cs CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	if cs.ID == "" {
		return nil, errors.New("checkout session id missing")
	}

	return &cs, nil
}
