package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookinghttp "github.com/rindi230/angelsfitnesgym/internal/booking/handler/http"
	calculatorhttp "github.com/rindi230/angelsfitnesgym/internal/calculator/handler/http"
	carthttp "github.com/rindi230/angelsfitnesgym/internal/cart/handler/http"
	checkouthttp "github.com/rindi230/angelsfitnesgym/internal/checkout/handler/http"
	classhttp "github.com/rindi230/angelsfitnesgym/internal/classes/handler/http"
	membershiphttp "github.com/rindi230/angelsfitnesgym/internal/membership/handler/http"
	producthttp "github.com/rindi230/angelsfitnesgym/internal/product/handler/http"
	"github.com/rindi230/angelsfitnesgym/pkg/health"
	"github.com/rindi230/angelsfitnesgym/pkg/middleware"
)

const serviceName = "gym-server"

// catalogCacheMaxAge is the Cache-Control max-age for the read-mostly
// catalog endpoints (classes, products, membership plans).
const catalogCacheMaxAge = 60

// Handlers groups the feature handlers mounted on the router.
type Handlers struct {
	Cart       *carthttp.CartHandler
	Checkout   *checkouthttp.CheckoutHandler
	Booking    *bookinghttp.BookingHandler
	Classes    *classhttp.ClassHandler
	Products   *producthttp.ProductHandler
	Membership *membershiphttp.MembershipHandler
	Calculator *calculatorhttp.CalculatorHandler
}

// NewRouter creates a chi router with all gym server routes registered.
func NewRouter(
	h Handlers,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	r.Route("/api/v1/cart", h.Cart.Routes)
	r.Route("/api/v1/checkout", h.Checkout.Routes)
	r.Route("/api/v1/bookings", h.Booking.Routes)
	r.Route("/api/v1/calculator", h.Calculator.Routes)

	// Catalog endpoints are read-mostly and safe to cache briefly.
	r.Route("/api/v1/classes", func(r chi.Router) {
		r.Use(middleware.CacheControl(catalogCacheMaxAge))
		h.Classes.Routes(r)
	})
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(middleware.CacheControl(catalogCacheMaxAge))
		h.Products.Routes(r)
	})
	r.Route("/api/v1/membership", func(r chi.Router) {
		r.Use(middleware.CacheControl(catalogCacheMaxAge))
		h.Membership.Routes(r)
	})

	return r
}
