package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/pricing"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-checkout/pkg/stripe"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var errPaymentAlreadyCompleted = stdErrors.New("payment already completed")

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type CheckoutService interface {
	CreateSession(ctx context.Context, claims *models.Claims, cartID uuid.UUID, req *models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error)
	// HandleWebhook verifies and processes one processor event. Once the
	// signature checks out it never fails: the result records the outcome.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*models.WebhookResult, error)
}

type checkoutService struct {
	cfg          CheckoutConfig
	stripeClient stripe.Client
	cartRepo     repository.CartRepository
	userRepo     repository.UserRepository
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	orders       OrderService
	inventory    InventoryReconciler
}

func NewCheckoutService(
	cfg CheckoutConfig,
	stripeClient stripe.Client,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	orders OrderService,
	inventory InventoryReconciler,
) CheckoutService {
	return &checkoutService{
		cfg:          cfg,
		stripeClient: stripeClient,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		orders:       orders,
		inventory:    inventory,
	}
}

// CreateSession prices the cart and opens a hosted card checkout for it. The
// breakdown travels in the session metadata so the webhook does not re-price.
func (s *checkoutService) CreateSession(ctx context.Context, claims *models.Claims, cartID uuid.UUID, req *models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

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

	address := utils.SanitizeAddress(req.Address())
	meta := quote.Metadata(method, address)

	cs, err := s.stripeClient.CreateCheckoutSession(ctx, &stripe.CheckoutSessionInput{
		ClientReferenceID: cart.ID.String(),
		CustomerEmail:     user.Email,
		ProductName:       user.Name,
		Amount:            pricing.ToMinorUnits(quote.TotalOrderPrice),
		Currency:          s.cfg.Currency,
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		Metadata:          meta.ToMap(),
	})
	if err != nil {
		logger.Error("Checkout session creation failed", slog.String("error", err.Error()))
		return nil, errors.ThirdPartyError("Failed to create checkout session").WithDetail(err.Error()).WithError(err)
	}

	payment := &models.Payment{
		ID:       cs.ID,
		CartID:   cart.ID,
		UserID:   user.ID,
		Amount:   quote.TotalOrderPrice,
		Currency: s.cfg.Currency,
		Status:   models.PaymentStatusPending,
	}

	// The webhook claim upserts, so a missing pending row is recoverable.
	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		logger.Warn("Failed to record pending payment",
			slog.String("sessionId", cs.ID),
			slog.String("error", err.Error()))
	}

	logger.Info("Checkout session created",
		slog.String("sessionId", cs.ID),
		slog.String("cartId", cart.ID.String()),
		slog.Float64("total", quote.TotalOrderPrice))

	return &models.CheckoutSessionResponse{SessionID: cs.ID, URL: cs.URL}, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*models.WebhookResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		logger.Warn("Webhook signature verification failed", slog.String("error", err.Error()))
		return nil, errors.WebhookSignatureError("Webhook signature verification failed").WithError(err)
	}

	result := &models.WebhookResult{EventType: string(event.Type), Received: true}
	logger = logger.With(slog.String("eventId", event.ID), slog.String("eventType", result.EventType))

	if result.EventType != stripe.EventCheckoutSessionCompleted {
		result.Outcome = models.WebhookIgnored
		metrics.RecordWebhookEvent(result.EventType, string(result.Outcome))

		return result, nil
	}

	order, err := s.completeSession(middleware.WithLogger(ctx, logger), event)

	switch {
	case stdErrors.Is(err, errPaymentAlreadyCompleted), stdErrors.Is(err, repository.ErrDuplicate):
		result.Outcome = models.WebhookDuplicate
		logger.Info("Duplicate checkout completion ignored")
	case err != nil:
		result.Outcome = models.WebhookFailed
		logger.Error("Checkout completion failed", slog.String("error", err.Error()))
	default:
		result.Outcome = models.WebhookCompleted
		result.OrderID = &order.ID
	}

	metrics.RecordWebhookEvent(result.EventType, string(result.Outcome))

	return result, nil
}

// completeSession turns a paid session into a card order. It returns
// errPaymentAlreadyCompleted or repository.ErrDuplicate when an earlier
// delivery already did.
func (s *checkoutService) completeSession(ctx context.Context, event stripe.Event) (*models.Order, error) {
	cs, err := stripe.SessionFromEvent(event)
	if err != nil {
		return nil, err
	}

	meta, err := models.ParseSessionMetadata(cs.Metadata)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cs.ID, err)
	}

	cartID, err := uuid.Parse(cs.ClientReferenceID)
	if err != nil {
		return nil, fmt.Errorf("session %s: invalid client reference id: %w", cs.ID, err)
	}

	email := cs.CustomerEmail
	if email == "" && cs.CustomerDetails != nil {
		email = cs.CustomerDetails.Email
	}

	var (
		cart    *models.Cart
		user    *models.User
		cartErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cart, cartErr = s.cartRepo.GetCartByID(gctx, cartID)
		return cartErr
	})

	g.Go(func() error {
		var err error

		user, err = s.userRepo.GetUserByEmail(gctx, email)
		if err != nil {
			return fmt.Errorf("failed to load user %q: %w", email, err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		if stdErrors.Is(cartErr, sql.ErrNoRows) {
			return nil, s.missingCart(ctx, cs.ID, cartID)
		}

		return nil, err
	}

	payment := &models.Payment{
		ID:       cs.ID,
		CartID:   cart.ID,
		UserID:   user.ID,
		Amount:   meta.TotalOrderPrice,
		Currency: s.currency(cs),
	}

	sessionID := cs.ID

	return s.orders.CreateFromCart(ctx, &CreateFromCartParams{
		Cart:            cart,
		User:            user,
		ShippingAddress: meta.ShippingAddress,
		ShippingMethod:  meta.ShippingMethod,
		Pricing: pricing.Breakdown{
			CartPrice:       meta.CartPrice,
			TaxPrice:        meta.TaxPrice,
			ShippingPrice:   meta.ShippingPrice,
			TotalOrderPrice: meta.TotalOrderPrice,
		},
		PaymentMethodType: models.PaymentMethodCard,
		CheckoutSessionID: &sessionID,
		Guard: func(ctx context.Context) error {
			claimed, err := s.paymentRepo.ClaimCompletion(ctx, payment)
			if err != nil {
				return err
			}

			if !claimed {
				return errPaymentAlreadyCompleted
			}

			return nil
		},
	})
}

// missingCart tells a redelivery, whose cart the first delivery consumed,
// apart from a session that points at a cart that never existed.
func (s *checkoutService) missingCart(ctx context.Context, sessionID string, cartID uuid.UUID) error {
	_, err := s.orderRepo.GetOrderBySessionID(ctx, sessionID)
	if err == nil {
		return errPaymentAlreadyCompleted
	}

	if stdErrors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("cart %s not found for session %s", cartID, sessionID)
	}

	return err
}

func (s *checkoutService) currency(cs *stripe.CheckoutSession) string {
	if cs.Currency != "" {
		return string(cs.Currency)
	}

	return s.cfg.Currency
}
