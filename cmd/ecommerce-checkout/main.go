package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/ecommerce-checkout/docs"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/cache"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/config"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/health"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	service "github.com/aaravmahajanofficial/ecommerce-checkout/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/telemetry"
	"github.com/aaravmahajanofficial/ecommerce-checkout/pkg/sendgrid"
	"github.com/aaravmahajanofficial/ecommerce-checkout/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						E-commerce Checkout API
//	@version					1.0
//	@description				Cart, coupon, order and card checkout endpoints.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracer(ctx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	products := repository.NewCachedProductRepo(repos.Product, productCache, cfg.Cache.DefaultTTL)

	jwtKey := []byte(cfg.Security.JWTKey)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	couponService := service.NewCouponService(repos.Coupon)
	cartService := service.NewCartService(repos.Cart, products, couponService)
	inventory := service.NewInventoryReconciler(products, productCache)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	orderService := service.NewOrderService(repos.Tx, repos.Order, repos.Cart, repos.User, inventory, notificationService)
	checkoutService := service.NewCheckoutService(
		service.CheckoutConfig{
			Currency:   cfg.Stripe.Currency,
			SuccessURL: cfg.Stripe.SuccessURL,
			CancelURL:  cfg.Stripe.CancelURL,
		},
		stripeClient, repos.Cart, repos.User, repos.Payment, repos.Order, orderService, inventory,
	)

	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:           repos.DB,
		RedisClient:  redisClient,
		StripeClient: stripeClient,
	})
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	staff := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRoles(next, models.RoleManager, models.RoleAdmin))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/cart", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("PUT /api/v1/cart/applyCoupon", authMiddleware.Authenticate(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("PUT /api/v1/cart/{itemId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/{itemId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/orders/checkout-session/{cartId}", authMiddleware.Authenticate(checkoutHandler.CreateSession()))
	routerMux.HandleFunc("POST /api/v1/orders/{cartId}", authMiddleware.Authenticate(orderHandler.CreateCashOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/pay", staff(orderHandler.MarkPaid()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/deliver", staff(orderHandler.MarkDelivered()))
	routerMux.HandleFunc("POST /api/v1/webhook-checkout", checkoutHandler.Webhook())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
