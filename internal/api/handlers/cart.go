package handlers

import (
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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func writeCart(w http.ResponseWriter, statusCode int, message string, cart *models.Cart) {
	response.CartSuccess(w, statusCode, message, len(cart.Items), cart)
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of the product. The cart is created on first use and an existing line with the same color and size is incremented.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and variant"
//	@Success		200		{object}	response.APIResponse{data=models.Cart}
//	@Failure		400		{object}	response.APIResponse	"Validation error or product out of stock"
//	@Failure		401		{object}	response.APIResponse	"Authentication required"
//	@Failure		404		{object}	response.APIResponse	"Product not found"
//	@Failure		500		{object}	response.APIResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("cartId", cart.ID.String()))
		writeCart(w, http.StatusOK, "Product added successfully to your cart", cart)
	}
}

// GetCart godoc
//	@Summary		Get the current user's cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	response.APIResponse{data=models.Cart}
//	@Failure		401	{object}	response.APIResponse	"Authentication required"
//	@Failure		404	{object}	response.APIResponse	"Cart not found"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		writeCart(w, http.StatusOK, "", cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			itemId		path		string							true	"Cart line ID (UUID)"	Format(uuid)
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	response.APIResponse{data=models.Cart}
//	@Failure		400			{object}	response.APIResponse	"Validation error"
//	@Failure		401			{object}	response.APIResponse	"Authentication required"
//	@Failure		404			{object}	response.APIResponse	"Cart or line not found"
//	@Security		BearerAuth
//	@Router			/cart/{itemId} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), claims.UserID, itemID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart line",
				slog.String("itemId", itemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		writeCart(w, http.StatusOK, "Product quantity updated", cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			itemId	path		string	true	"Cart line ID (UUID)"	Format(uuid)
//	@Success		200		{object}	response.APIResponse{data=models.Cart}
//	@Failure		401		{object}	response.APIResponse	"Authentication required"
//	@Failure		404		{object}	response.APIResponse	"Cart or line not found"
//	@Security		BearerAuth
//	@Router			/cart/{itemId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, itemID)
		if err != nil {
			logger.Warn("Failed to remove cart line",
				slog.String("itemId", itemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		writeCart(w, http.StatusOK, "Product removed from your cart", cart)
	}
}

// ClearCart godoc
//	@Summary	Delete the current user's cart
//	@Tags		Cart
//	@Success	204
//	@Failure	401	{object}	response.APIResponse	"Authentication required"
//	@Failure	404	{object}	response.APIResponse	"Cart not found"
//	@Security	BearerAuth
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Warn("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ApplyCoupon godoc
//	@Summary		Apply a coupon to the cart
//	@Description	Discounts the current effective cart total. Applying another coupon compounds on the discounted total.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ApplyCouponRequest	true	"Coupon name"
//	@Success		200		{object}	response.APIResponse{data=models.Cart}
//	@Failure		400		{object}	response.APIResponse	"Invalid or expired coupon, or empty cart"
//	@Failure		401		{object}	response.APIResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/applyCoupon [put]
func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.ApplyCoupon(r.Context(), claims.UserID, req.Coupon)
		if err != nil {
			logger.Warn("Failed to apply coupon", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		writeCart(w, http.StatusOK, "Coupon applied", cart)
	}
}
