package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/pricing"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/google/uuid"
)

type OrderService interface {
	CreateFromCart(ctx context.Context, params *CreateFromCartParams) (*models.Order, error)
	CreateCashOrder(ctx context.Context, claims *models.Claims, cartID uuid.UUID, req *models.CreateCashOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, claims *models.Claims, page, size int) (*models.OrderListResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type CreateFromCartParams struct {
	Cart              *models.Cart
	User              *models.User
	ShippingAddress   models.ShippingAddress
	ShippingMethod    string
	Pricing           pricing.Breakdown
	PaymentMethodType models.PaymentMethodType
	CheckoutSessionID *string
	// Guard runs first inside the order transaction. An error aborts the
	// order and is returned unchanged.
	Guard func(ctx context.Context) error
}

type orderService struct {
	tx        repository.Transactor
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	inventory InventoryReconciler
	notifier  NotificationService
}

func NewOrderService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	inventory InventoryReconciler,
	notifier NotificationService,
) OrderService {
	return &orderService{
		tx:        tx,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		inventory: inventory,
		notifier:  notifier,
	}
}

// CreateFromCart snapshots the cart into a new order. The order insert, the
// inventory adjustment and the cart delete commit together.
func (s *orderService) CreateFromCart(ctx context.Context, params *CreateFromCartParams) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)
	now := time.Now()

	order := &models.Order{
		ID:                uuid.New(),
		UserID:            params.User.ID,
		ShippingAddress:   params.ShippingAddress,
		ShippingMethod:    params.ShippingMethod,
		ShippingPrice:     params.Pricing.ShippingPrice,
		TaxPrice:          params.Pricing.TaxPrice,
		TotalOrderPrice:   params.Pricing.TotalOrderPrice,
		PaymentMethodType: params.PaymentMethodType,
		CheckoutSessionID: params.CheckoutSessionID,
	}
	order.Items = models.SnapshotItems(order.ID, params.Cart.Items)

	if params.PaymentMethodType == models.PaymentMethodCard {
		order.IsPaid = true
		order.PaidAt = &now
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if params.Guard != nil {
			if err := params.Guard(ctx); err != nil {
				return err
			}
		}

		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			if stdErrors.Is(err, repository.ErrDuplicate) {
				return errors.DuplicateEntryError("Order already exists for this checkout").WithError(err)
			}

			return errors.DatabaseError("Failed to create order").WithError(err)
		}

		if err := s.inventory.Apply(ctx, order.Items); err != nil {
			return err
		}

		if err := s.cartRepo.DeleteCart(ctx, params.Cart.ID); err != nil {
			return cartLookupError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.inventory.Evict(ctx, order.Items)
	metrics.RecordOrderCreated(string(order.PaymentMethodType))

	logger.Info("Order created",
		slog.String("orderId", order.ID.String()),
		slog.String("paymentMethod", string(order.PaymentMethodType)),
		slog.Float64("total", order.TotalOrderPrice))

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, params.User, order); err != nil {
			logger.Warn("Order confirmation not delivered",
				slog.String("orderId", order.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return order, nil
}

func (s *orderService) CreateCashOrder(ctx context.Context, claims *models.Claims, cartID uuid.UUID, req *models.CreateCashOrderRequest) (*models.Order, error) {
	cart, err := loadCheckoutCart(ctx, s.cartRepo, claims, cartID, req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	if err := s.inventory.CheckStock(ctx, cart.Items); err != nil {
		return nil, err
	}

	method := strings.TrimSpace(req.ShippingMethod)

	quote, err := pricing.Quote(cart.EffectivePrice(), method)
	if err != nil {
		return nil, errors.BadRequestError(err.Error())
	}

	user, err := lookupUser(ctx, s.userRepo, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.CreateFromCart(ctx, &CreateFromCartParams{
		Cart:              cart,
		User:              user,
		ShippingAddress:   utils.SanitizeAddress(req.ShippingAddress),
		ShippingMethod:    method,
		Pricing:           quote,
		PaymentMethodType: models.PaymentMethodCash,
	})
}

// loadCheckoutCart runs the checks shared by the cash and card paths, in
// order: existence, ownership, shipping method and emptiness.
func loadCheckoutCart(ctx context.Context, carts repository.CartRepository, claims *models.Claims, cartID uuid.UUID, shippingMethod string) (*models.Cart, error) {
	cart, err := carts.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, cartLookupError(err)
	}

	if cart.UserID != claims.UserID {
		middleware.LoggerFromContext(ctx).Warn("Checkout attempted on another user's cart",
			slog.String("cartId", cartID.String()))

		return nil, errors.ForbiddenError("You are not allowed to check out this cart")
	}

	if strings.TrimSpace(shippingMethod) == "" {
		return nil, errors.BadRequestError(pricing.ErrMissingShippingMethod.Error())
	}

	if len(cart.Items) == 0 {
		return nil, errors.BadRequestError("No items in the cart")
	}

	return cart, nil
}

func lookupUser(ctx context.Context, users repository.UserRepository, id uuid.UUID) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err)
	}

	if !claims.Role.IsStaff() && order.UserID != claims.UserID {
		return nil, errors.ForbiddenError("You are not allowed to view this order")
	}

	return order, nil
}

// ListOrders shows users their own orders and staff everyone's.
func (s *orderService) ListOrders(ctx context.Context, claims *models.Claims, page, size int) (*models.OrderListResponse, error) {
	var owner *uuid.UUID

	if !claims.Role.IsStaff() {
		owner = &claims.UserID
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, owner, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.OrderListResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.MarkPaid(ctx, id, time.Now())
	if err != nil {
		return nil, orderLookupError(err)
	}

	return order, nil
}

func (s *orderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.MarkDelivered(ctx, id, time.Now())
	if err != nil {
		return nil, orderLookupError(err)
	}

	return order, nil
}

func orderLookupError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Order not found").WithError(err)
	}

	return errors.DatabaseError("Failed to fetch order").WithError(err)
}
