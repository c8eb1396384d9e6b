package config

import (
	"fmt"
	"strings"

	"github.com/rindi230/angelsfitnesgym/internal/contact"
	pkgconfig "github.com/rindi230/angelsfitnesgym/pkg/config"
)

// Config holds all configuration for the gym site server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// SiteBaseURL is the public origin of the site, used to build the
	// payment success/cancel return URLs.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"gym"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"gym_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"angelsfitness"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis (session carts)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 24 hours, carts are session-scoped)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"24"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Payment gateway (Stripe-style hosted checkout sessions)
	PaymentGatewayURL string `env:"PAYMENT_GATEWAY_URL" envDefault:"http://localhost:9091/v1/checkout/sessions"`
	PaymentGatewayKey string `env:"PAYMENT_GATEWAY_KEY" envDefault:""`

	// Email delivery (Resend-style HTTP API)
	EmailEndpointURL string `env:"EMAIL_ENDPOINT_URL" envDefault:""`
	EmailAPIKey      string `env:"EMAIL_API_KEY" envDefault:""`
	EmailFrom        string `env:"EMAIL_FROM" envDefault:"Angels Fitness <onboarding@resend.dev>"`
	EmailAdminTo     string `env:"EMAIL_ADMIN_TO" envDefault:"rindisedna@gmail.com"`

	// Contact validation policy. These are deployment choices, not
	// fundamental rules, so they are configurable.
	ContactEmailDomain    string   `env:"CONTACT_EMAIL_DOMAIN" envDefault:"gmail.com"`
	ContactPhoneCode      string   `env:"CONTACT_PHONE_CODE" envDefault:"+355"`
	ContactMobilePrefixes []string `env:"CONTACT_MOBILE_PREFIXES" envDefault:"6,7,8" envSeparator:","`

	// Booking status display: seconds a class stays in "booked" before
	// returning to idle.
	BookingResetSeconds int `env:"BOOKING_RESET_SECONDS" envDefault:"3"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`

	// CORS and pprof
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("cart TTL must be at least 1 hour, got %d", c.CartTTL)
	}
	if !strings.HasPrefix(c.ContactPhoneCode, "+") {
		return fmt.Errorf("contact phone code must start with '+', got %q", c.ContactPhoneCode)
	}
	if c.BookingResetSeconds < 1 {
		return fmt.Errorf("booking reset seconds must be at least 1, got %d", c.BookingResetSeconds)
	}
	return nil
}

// ContactPolicy builds the contact validation policy from configuration.
func (c *Config) ContactPolicy() contact.Policy {
	return contact.Policy{
		EmailDomain:         c.ContactEmailDomain,
		PhoneCountryCode:    c.ContactPhoneCode,
		PhoneMobilePrefixes: c.ContactMobilePrefixes,
	}
}

// PaymentSuccessURL is the return URL the payment provider redirects to after
// a completed payment. The query marker drives cart clearing on return.
func (c *Config) PaymentSuccessURL() string {
	return c.SiteBaseURL + "/?payment=success"
}

// PaymentCancelURL is the return URL for an abandoned payment.
func (c *Config) PaymentCancelURL() string {
	return c.SiteBaseURL + "/?payment=cancelled"
}
