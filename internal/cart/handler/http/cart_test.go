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

	"github.com/rindi230/angelsfitnesgym/internal/cart/domain"
	"github.com/rindi230/angelsfitnesgym/internal/cart/event"
	"github.com/rindi230/angelsfitnesgym/internal/cart/service"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func newTestRouter(repo *mockCartRepository) http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	svc := service.NewCartService(repo, event.NewProducer(kafkaProducer, logger), logger, 24*time.Hour)
	h := NewCartHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1/cart", h.Routes)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
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

func TestGetCart_MissingSessionHeader(t *testing.T) {
	router := newTestRouter(new(mockCartRepository))

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestGetCart_ReturnsEmptyCartForNewSession(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	router := newTestRouter(repo)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/cart", "sess-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Items)
}

func TestAddItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	router := newTestRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", AddItemRequest{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 2,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestAddItem_ValidationFailure(t *testing.T) {
	router := newTestRouter(new(mockCartRepository))

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", AddItemRequest{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAddItem_MalformedJSON(t *testing.T) {
	router := newTestRouter(new(mockCartRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"))
	req.Header.Set(SessionHeader, "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_Success(t *testing.T) {
	repo := new(mockCartRepository)
	cart := domain.NewCart("sess-1", 24*time.Hour)
	cart.AddItem(domain.Item{ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 2})
	repo.On("Get", mock.Anything, "sess-1").Return(cart, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	router := newTestRouter(repo)

	rec, env := doRequest(t, router, http.MethodPut, "/api/v1/cart/items/1", "sess-1", UpdateQuantityRequest{Quantity: 5})

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.Cart
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 5, got.Items[0].Quantity)
}

func TestUpdateQuantity_InvalidProductIDParam(t *testing.T) {
	router := newTestRouter(new(mockCartRepository))

	rec, env := doRequest(t, router, http.MethodPut, "/api/v1/cart/items/abc", "sess-1", UpdateQuantityRequest{Quantity: 5})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PARAMETER", env.Error.Code)
}

func TestRemoveItem_MissingProductReturnsCartUnchanged(t *testing.T) {
	repo := new(mockCartRepository)
	cart := domain.NewCart("sess-1", 24*time.Hour)
	cart.AddItem(domain.Item{ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 2})
	repo.On("Get", mock.Anything, "sess-1").Return(cart, nil)
	router := newTestRouter(repo)

	rec, env := doRequest(t, router, http.MethodDelete, "/api/v1/cart/items/99", "sess-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.Cart
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Items, 1)
	repo.AssertNotCalled(t, "Save")
}

func TestClearCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Delete", mock.Anything, "sess-1").Return(nil)
	router := newTestRouter(repo)

	rec, _ := doRequest(t, router, http.MethodDelete, "/api/v1/cart", "sess-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestClearCart_RepositoryError(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Delete", mock.Anything, "sess-1").Return(assert.AnError)
	router := newTestRouter(repo)

	rec, env := doRequest(t, router, http.MethodDelete, "/api/v1/cart", "sess-1", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
