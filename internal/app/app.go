package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	bookingdomain "github.com/rindi230/angelsfitnesgym/internal/booking/domain"
	bookingevent "github.com/rindi230/angelsfitnesgym/internal/booking/event"
	bookinghttp "github.com/rindi230/angelsfitnesgym/internal/booking/handler/http"
	bookingpg "github.com/rindi230/angelsfitnesgym/internal/booking/repository/postgres"
	bookingservice "github.com/rindi230/angelsfitnesgym/internal/booking/service"
	"github.com/rindi230/angelsfitnesgym/internal/bus"
	calculatorhttp "github.com/rindi230/angelsfitnesgym/internal/calculator/handler/http"
	cartevent "github.com/rindi230/angelsfitnesgym/internal/cart/event"
	carthttp "github.com/rindi230/angelsfitnesgym/internal/cart/handler/http"
	cartredis "github.com/rindi230/angelsfitnesgym/internal/cart/repository/redis"
	cartservice "github.com/rindi230/angelsfitnesgym/internal/cart/service"
	checkoutevent "github.com/rindi230/angelsfitnesgym/internal/checkout/event"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/gateway"
	checkouthttp "github.com/rindi230/angelsfitnesgym/internal/checkout/handler/http"
	checkoutpg "github.com/rindi230/angelsfitnesgym/internal/checkout/repository/postgres"
	checkoutservice "github.com/rindi230/angelsfitnesgym/internal/checkout/service"
	classhttp "github.com/rindi230/angelsfitnesgym/internal/classes/handler/http"
	classpg "github.com/rindi230/angelsfitnesgym/internal/classes/repository/postgres"
	classservice "github.com/rindi230/angelsfitnesgym/internal/classes/service"
	"github.com/rindi230/angelsfitnesgym/internal/config"
	membershipevent "github.com/rindi230/angelsfitnesgym/internal/membership/event"
	membershiphttp "github.com/rindi230/angelsfitnesgym/internal/membership/handler/http"
	membershipservice "github.com/rindi230/angelsfitnesgym/internal/membership/service"
	"github.com/rindi230/angelsfitnesgym/internal/notification/sender"
	sendermock "github.com/rindi230/angelsfitnesgym/internal/notification/sender/mock"
	"github.com/rindi230/angelsfitnesgym/internal/notification/sender/resend"
	notificationservice "github.com/rindi230/angelsfitnesgym/internal/notification/service"
	producthttp "github.com/rindi230/angelsfitnesgym/internal/product/handler/http"
	productpg "github.com/rindi230/angelsfitnesgym/internal/product/repository/postgres"
	productservice "github.com/rindi230/angelsfitnesgym/internal/product/service"
	"github.com/rindi230/angelsfitnesgym/internal/server"
	"github.com/rindi230/angelsfitnesgym/migrations"
	"github.com/rindi230/angelsfitnesgym/pkg/database"
	"github.com/rindi230/angelsfitnesgym/pkg/health"
	"github.com/rindi230/angelsfitnesgym/pkg/httpclient"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
	"github.com/rindi230/angelsfitnesgym/pkg/middleware"
	"github.com/rindi230/angelsfitnesgym/pkg/tracing"
)

// App wires together all dependencies and runs the gym server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	tracker        *bookingdomain.StateTracker
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "gym-server",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPassword
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSLMode

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "gym-server")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis for session carts.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Shared HTTP client with circuit breakers for the external payment
	// gateway and email delivery APIs.
	baseClient := httpclient.New(httpclient.Config{
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	})
	paymentClient := httpclient.NewCircuitBreakerClient(
		baseClient, httpclient.DefaultCircuitBreakerConfig("payment-gateway"), logger)
	emailClient := httpclient.NewCircuitBreakerClient(
		baseClient, httpclient.DefaultCircuitBreakerConfig("email-delivery"), logger)

	// Email sender. Without an endpoint configured, emails are logged
	// instead of delivered.
	var emailSender sender.Sender
	if cfg.EmailEndpointURL != "" {
		emailSender = resend.NewEmailSender(emailClient, cfg.EmailEndpointURL, cfg.EmailAPIKey, logger)
	} else {
		emailSender = sendermock.NewMockSender(logger)
		logger.Warn("no email endpoint configured, using mock sender")
	}
	notifier := notificationservice.NewNotificationService(emailSender, cfg.EmailFrom, cfg.EmailAdminTo, logger)

	// In-process signals shared across features.
	signals := bus.New(logger)
	signals.Subscribe(bus.SignalBookingUpdated, func() {
		logger.Debug("booking state changed")
	})
	signals.Subscribe(bus.SignalOrderCompleted, func() {
		logger.Debug("order completed")
	})

	policy := cfg.ContactPolicy()
	tracker := bookingdomain.NewStateTracker(time.Duration(cfg.BookingResetSeconds) * time.Second)

	// Build the dependency graph.
	classRepo := classpg.NewClassRepository(pool)
	classSvc := classservice.NewClassService(classRepo, logger)

	productRepo := productpg.NewProductRepository(pool)
	productSvc := productservice.NewProductService(productRepo, logger)

	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	cartRepo := cartredis.NewCartRepository(rdb, cartTTL)
	cartSvc := cartservice.NewCartService(cartRepo, cartevent.NewProducer(producer, logger), logger, cartTTL)

	bookingRepo := bookingpg.NewBookingRepository(pool)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo, classRepo, policy, tracker, signals, notifier,
		bookingevent.NewProducer(producer, logger), logger,
	)

	membershipSvc := membershipservice.NewMembershipService(
		policy, notifier, membershipevent.NewProducer(producer, logger), logger,
	)

	paymentGateway := gateway.NewHTTPGateway(paymentClient, cfg.PaymentGatewayURL, cfg.PaymentGatewayKey, logger)
	orderRepo := checkoutpg.NewOrderRepository(pool)
	checkoutSvc := checkoutservice.NewCheckoutService(
		cartSvc, paymentGateway, orderRepo, signals, notifier,
		checkoutevent.NewProducer(producer, logger), policy,
		cfg.PaymentSuccessURL(), cfg.PaymentCancelURL(), logger,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := server.NewRouter(server.Handlers{
		Cart:       carthttp.NewCartHandler(cartSvc, logger),
		Checkout:   checkouthttp.NewCheckoutHandler(checkoutSvc, logger),
		Booking:    bookinghttp.NewBookingHandler(bookingSvc, logger),
		Classes:    classhttp.NewClassHandler(classSvc, logger),
		Products:   producthttp.NewProductHandler(productSvc, logger),
		Membership: membershiphttp.NewMembershipHandler(membershipSvc, logger),
		Calculator: calculatorhttp.NewCalculatorHandler(logger),
	}, healthHandler, logger, corsCfg, cfg.PprofAllowedCIDRs)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		tracker:        tracker,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Booking state timers
// 4. Kafka producer
// 5. Redis client and PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.tracker.Stop()

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
