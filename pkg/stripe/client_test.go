package stripe_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	stripeClient "github.com/aaravmahajanofficial/ecommerce-checkout/pkg/stripe"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func signedPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})

	return signed.Header
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session","client_reference_id":"cart-1","amount_total":4240,"metadata":{"city":"Springfield"}}}}`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := stripeClient.NewStripeClient("sk_test", testWebhookSecret)

		// Act
		event, err := client.VerifyWebhookSignature(payload, signedPayload(t, payload, testWebhookSecret))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stripeClient.EventCheckoutSessionCompleted, string(event.Type))

		cs, err := stripeClient.SessionFromEvent(event)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", cs.ID)
		assert.Equal(t, "cart-1", cs.ClientReferenceID)
		assert.Equal(t, int64(4240), cs.AmountTotal)
		assert.Equal(t, "Springfield", cs.Metadata["city"])
	})

	t.Run("Failure - Wrong secret", func(t *testing.T) {
		// Arrange
		client := stripeClient.NewStripeClient("sk_test", testWebhookSecret)

		// Act
		_, err := client.VerifyWebhookSignature(payload, signedPayload(t, payload, "whsec_other"))

		// Assert
		assert.Error(t, err)
	})

	t.Run("Failure - Tampered payload", func(t *testing.T) {
		// Arrange
		client := stripeClient.NewStripeClient("sk_test", testWebhookSecret)
		header := signedPayload(t, payload, testWebhookSecret)
		tampered := []byte(`{"id":"evt_2","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_evil"}}}`)

		// Act
		_, err := client.VerifyWebhookSignature(tampered, header)

		// Assert
		assert.Error(t, err)
	})

	t.Run("Failure - Secret not configured", func(t *testing.T) {
		// Arrange
		client := stripeClient.NewStripeClient("sk_test", "")

		// Act
		_, err := client.VerifyWebhookSignature(payload, "t=1,v1=abc")

		// Assert
		assert.ErrorIs(t, err, stripeClient.ErrWebhookSecretMissing)
	})
}

func TestSessionFromEvent(t *testing.T) {
	t.Run("Failure - No data", func(t *testing.T) {
		_, err := stripeClient.SessionFromEvent(stripeClient.Event{})
		assert.Error(t, err)
	})

	t.Run("Failure - Missing id", func(t *testing.T) {
		event := stripeClient.Event{Data: &stripe.EventData{Raw: json.RawMessage(`{"object":"checkout.session"}`)}}

		_, err := stripeClient.SessionFromEvent(event)
		assert.ErrorContains(t, err, "checkout session id missing")
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	// Arrange
	var form url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		form, err = url.ParseQuery(string(body))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_42","object":"checkout.session","url":"https://checkout.stripe.com/pay/cs_test_42"}`))
	}))
	defer server.Close()

	previous := stripe.GetBackend(stripe.APIBackend)
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
	}))

	t.Cleanup(func() { stripe.SetBackend(stripe.APIBackend, previous) })

	client := stripeClient.NewStripeClient("sk_test", testWebhookSecret)

	// Act
	cs, err := client.CreateCheckoutSession(t.Context(), &stripeClient.CheckoutSessionInput{
		ClientReferenceID: "cart-1",
		CustomerEmail:     "ada@example.com",
		ProductName:       "Ada",
		Amount:            4240,
		Currency:          "usd",
		SuccessURL:        "https://shop.example.com/orders",
		CancelURL:         "https://shop.example.com/cart",
		Metadata:          map[string]string{"shippingMethod": "Standard"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", cs.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_42", cs.URL)
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "cart-1", form.Get("client_reference_id"))
	assert.Equal(t, "4240", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Standard", form.Get("metadata[shippingMethod]"))
}
