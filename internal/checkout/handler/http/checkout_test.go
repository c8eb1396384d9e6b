package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rindi230/angelsfitnesgym/internal/bus"
	cartdomain "github.com/rindi230/angelsfitnesgym/internal/cart/domain"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/event"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/service"
	"github.com/rindi230/angelsfitnesgym/internal/contact"
	notification "github.com/rindi230/angelsfitnesgym/internal/notification/service"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

type mockCartStore struct {
	mock.Mock
}

func (m *mockCartStore) GetCart(ctx context.Context, sessionID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *mockCartStore) ClearCart(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSession(ctx context.Context, req *domain.CheckoutRequest) (*domain.PaymentSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSession), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) MarkPaidBySession(ctx context.Context, paymentSessionID string) error {
	args := m.Called(ctx, paymentSessionID)
	return args.Error(0)
}

type noopNotifier struct{}

func (noopNotifier) SendPickupOrder(context.Context, notification.PickupOrderInput) {}

func newTestRouter(carts *mockCartStore, gw *mockGateway, repo *mockOrderRepository) http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)

	svc := service.NewCheckoutService(
		carts, gw, repo, bus.New(logger), noopNotifier{},
		event.NewProducer(kafkaProducer, logger), contact.DefaultPolicy(),
		"https://angelsgym.com/?payment=success",
		"https://angelsgym.com/?payment=cancelled",
		logger,
	)
	h := NewCheckoutHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1/checkout", h.Routes)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path, sessionID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func filledCart(sessionID string) *cartdomain.Cart {
	cart := cartdomain.NewCart(sessionID, 24*time.Hour)
	cart.AddItem(cartdomain.Item{ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 2})
	return cart
}

func TestCreateSession_MissingSessionHeader(t *testing.T) {
	router := newTestRouter(new(mockCartStore), new(mockGateway), new(mockOrderRepository))

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/session", "", map[string]any{
		"customer_email": "arben@gmail.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestCreateSession_ReturnsGatewayURL(t *testing.T) {
	carts := new(mockCartStore)
	gw := new(mockGateway)
	repo := new(mockOrderRepository)

	carts.On("GetCart", mock.Anything, "sess-1").Return(filledCart("sess-1"), nil)
	gw.On("CreateSession", mock.Anything, mock.Anything).
		Return(&domain.PaymentSession{ID: "cs_test_123", URL: "https://pay.example.com/cs_test_123"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	router := newTestRouter(carts, gw, repo)
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/session", "sess-1", map[string]any{
		"customer_email": "arben@gmail.com",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var session domain.PaymentSession
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "https://pay.example.com/cs_test_123", session.URL)

	carts.AssertNotCalled(t, "ClearCart")
}

func TestCreateSession_EmptyCart(t *testing.T) {
	carts := new(mockCartStore)
	gw := new(mockGateway)

	carts.On("GetCart", mock.Anything, "sess-1").Return(cartdomain.NewCart("sess-1", 24*time.Hour), nil)

	router := newTestRouter(carts, gw, new(mockOrderRepository))
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/session", "sess-1", map[string]any{
		"customer_email": "arben@gmail.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "cart is empty")
	gw.AssertNotCalled(t, "CreateSession")
}

func TestCreateSession_PaymentFailure(t *testing.T) {
	carts := new(mockCartStore)
	gw := new(mockGateway)

	carts.On("GetCart", mock.Anything, "sess-1").Return(filledCart("sess-1"), nil)
	gw.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, apperrors.PaymentFailed("card network unavailable"))

	router := newTestRouter(carts, gw, new(mockOrderRepository))
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/session", "sess-1", map[string]any{
		"customer_email": "arben@gmail.com",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PAYMENT_FAILED", env.Error.Code)
}

func TestPaymentReturn_Success(t *testing.T) {
	carts := new(mockCartStore)
	repo := new(mockOrderRepository)

	carts.On("ClearCart", mock.Anything, "sess-1").Return(nil)
	repo.On("MarkPaidBySession", mock.Anything, "cs_test_123").Return(nil)

	router := newTestRouter(carts, new(mockGateway), repo)
	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/checkout/payment-return", "sess-1", map[string]any{
		"status":             "success",
		"payment_session_id": "cs_test_123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	carts.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestPaymentReturn_CancelledLeavesCart(t *testing.T) {
	carts := new(mockCartStore)

	router := newTestRouter(carts, new(mockGateway), new(mockOrderRepository))
	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/checkout/payment-return", "sess-1", map[string]any{
		"status": "cancelled",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	carts.AssertNotCalled(t, "ClearCart")
}

func TestPaymentReturn_UnknownStatus(t *testing.T) {
	router := newTestRouter(new(mockCartStore), new(mockGateway), new(mockOrderRepository))

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/payment-return", "sess-1", map[string]any{
		"status": "maybe",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCreatePickupOrder_Created(t *testing.T) {
	carts := new(mockCartStore)
	repo := new(mockOrderRepository)

	carts.On("GetCart", mock.Anything, "sess-1").Return(filledCart("sess-1"), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	carts.On("ClearCart", mock.Anything, "sess-1").Return(nil)

	router := newTestRouter(carts, new(mockGateway), repo)
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/pickup-order", "sess-1", map[string]any{
		"name":  "Dritan Leka",
		"email": "dritan@gmail.com",
		"phone": "+355674449876",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, domain.FulfillmentPickup, order.Fulfillment)
	assert.Equal(t, "+355 67 444 9876", order.CustomerPhone)
	carts.AssertExpectations(t)
}

func TestCreatePickupOrder_ContactPolicyFailure(t *testing.T) {
	router := newTestRouter(new(mockCartStore), new(mockGateway), new(mockOrderRepository))

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/checkout/pickup-order", "sess-1", map[string]any{
		"name":  "Dritan Leka",
		"email": "dritan@outlook.com",
		"phone": "+355674449876",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields["email"], "gmail.com")
}
