package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	service "github.com/aaravmahajanofficial/ecommerce-checkout/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateCashOrder godoc
//	@Summary		Place a cash order for a cart
//	@Description	Prices the cart, checks stock and turns it into an unpaid cash-on-delivery order. The cart is deleted.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			cartId	path		string							true	"Cart ID (UUID)"	Format(uuid)
//	@Param			order	body		models.CreateCashOrderRequest	true	"Shipping method and address"
//	@Success		201		{object}	response.APIResponse{data=models.Order}
//	@Failure		400		{object}	response.APIResponse	"Missing shipping method, empty cart or insufficient stock"
//	@Failure		401		{object}	response.APIResponse	"Authentication required"
//	@Failure		403		{object}	response.APIResponse	"Cart belongs to another user"
//	@Failure		404		{object}	response.APIResponse	"Cart not found"
//	@Failure		500		{object}	response.APIResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{cartId} [post]
func (h *OrderHandler) CreateCashOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateCashOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		order, err := h.orderService.CreateCashOrder(r.Context(), claims, cartID, &req)
		if err != nil {
			logger.Error("Failed to create order",
				slog.String("cartId", cartID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Users can read their own orders. Managers and admins can read any order.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	response.APIResponse{data=models.Order}
//	@Failure		400	{object}	response.APIResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.APIResponse	"Authentication required"
//	@Failure		403	{object}	response.APIResponse	"Order belongs to another user"
//	@Failure		404	{object}	response.APIResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			logger.Warn("Failed to get order",
				slog.String("orderId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		List orders with pagination
//	@Description	Users see their own orders, managers and admins see every order. Newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int	false	"Page number (default: 1)"						minimum(1)
//	@Param			pageSize	query		int	false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	response.APIResponse{data=models.OrderListResponse}
//	@Failure		401			{object}	response.APIResponse	"Authentication required"
//	@Failure		500			{object}	response.APIResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		orders, err := h.orderService.ListOrders(r.Context(), claims, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// MarkPaid godoc
//	@Summary	Mark an order as paid
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	response.APIResponse{data=models.Order}
//	@Failure	403	{object}	response.APIResponse	"Staff only"
//	@Failure	404	{object}	response.APIResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/orders/{id}/pay [put]
func (h *OrderHandler) MarkPaid() http.HandlerFunc {
	return h.updateStatus("paid", h.orderService.MarkPaid)
}

// MarkDelivered godoc
//	@Summary	Mark an order as delivered
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	response.APIResponse{data=models.Order}
//	@Failure	403	{object}	response.APIResponse	"Staff only"
//	@Failure	404	{object}	response.APIResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/orders/{id}/deliver [put]
func (h *OrderHandler) MarkDelivered() http.HandlerFunc {
	return h.updateStatus("delivered", h.orderService.MarkDelivered)
}

type orderUpdate func(ctx context.Context, id uuid.UUID) (*models.Order, error)

func (h *OrderHandler) updateStatus(status string, update orderUpdate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := update(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to update order status",
				slog.String("orderId", id.String()),
				slog.String("status", status),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("orderId", id.String()), slog.String("status", status))
		response.SuccessWithMessage(w, http.StatusOK, "Order marked as "+status, order)
	}
}
