package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	service "github.com/aaravmahajanofficial/ecommerce-checkout/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const maxWebhookBodyBytes = 65536

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// CreateSession godoc
//	@Summary		Open a hosted card checkout for a cart
//	@Description	Prices the cart and returns the payment processor's checkout URL. The order is created by the webhook once payment completes.
//	@Tags			Orders
//	@Produce		json
//	@Param			cartId			path		string	true	"Cart ID (UUID)"	Format(uuid)
//	@Param			shippingMethod	query		string	true	"Standard, Express, Overnight or Priority"
//	@Param			details			query		string	false	"Street address"
//	@Param			phone			query		string	false	"Phone"
//	@Param			city			query		string	false	"City"
//	@Param			postalCode		query		string	false	"Postal code"
//	@Success		200				{object}	response.APIResponse{data=models.CheckoutSessionResponse}
//	@Failure		400				{object}	response.APIResponse	"Missing shipping method, empty cart or insufficient stock"
//	@Failure		401				{object}	response.APIResponse	"Authentication required"
//	@Failure		403				{object}	response.APIResponse	"Cart belongs to another user"
//	@Failure		404				{object}	response.APIResponse	"Cart not found"
//	@Failure		500				{object}	response.APIResponse	"Payment processor error"
//	@Security		BearerAuth
//	@Router			/orders/checkout-session/{cartId} [get]
func (h *CheckoutHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			response.Error(w, err)
			return
		}

		query := r.URL.Query()
		req := models.CheckoutSessionRequest{
			ShippingMethod: query.Get("shippingMethod"),
			Details:        query.Get("details"),
			Phone:          query.Get("phone"),
			City:           query.Get("city"),
			PostalCode:     query.Get("postalCode"),
		}

		if !utils.Validate(w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.CreateSession(r.Context(), claims, cartID, &req)
		if err != nil {
			logger.Error("Failed to create checkout session",
				slog.String("cartId", cartID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

// Webhook godoc
//	@Summary		Payment processor webhook
//	@Description	Verifies the signature and turns a completed checkout session into a paid card order. Redeliveries are acknowledged without side effects.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Webhook signature"
//	@Success		200					{object}	models.WebhookResult
//	@Failure		400					{object}	response.APIResponse	"Missing or invalid signature"
//	@Router			/webhook-checkout [post]
func (h *CheckoutHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing webhook signature")
			response.Error(w, errors.WebhookSignatureError("Stripe signature is required"))
			return
		}

		result, err := h.checkoutService.HandleWebhook(r.Context(), payload, signature)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Webhook processed",
			slog.String("eventType", result.EventType),
			slog.String("outcome", string(result.Outcome)))

		response.WriteJson(w, http.StatusOK, result)
	}
}
