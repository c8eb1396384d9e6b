package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rindi230/angelsfitnesgym/internal/cart/domain"
	"github.com/rindi230/angelsfitnesgym/internal/cart/event"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

// --- Mock Repository ---

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

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockCartRepository) *CartService {
	logger := newTestLogger()
	// Kafka producer pointed at nothing; publish failures are logged, not returned.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewCartService(repo, producer, logger, 24*time.Hour)
}

func cartWithWhey(sessionID string) *domain.Cart {
	cart := domain.NewCart(sessionID, 24*time.Hour)
	cart.AddItem(domain.Item{ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 2})
	return cart
}

// --- GetCart ---

func TestGetCart_Empty(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	cart, err := svc.GetCart(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.True(t, cart.IsEmpty())
	assert.NotZero(t, cart.ExpiresAt)

	repo.AssertExpectations(t)
}

func TestGetCart_Existing(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	expected := cartWithWhey("sess-1")
	repo.On("Get", ctx, "sess-1").Return(expected, nil)

	cart, err := svc.GetCart(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, expected, cart)
	repo.AssertExpectations(t)
}

func TestGetCart_MissingSessionID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- AddItem ---

func TestAddItem_NewLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 1,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestAddItem_MergesExistingLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 1,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 0,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.AssertNotCalled(t, "Save")
}

func TestAddItem_CombinedQuantityCapped(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	cart := domain.NewCart("sess-1", 24*time.Hour)
	cart.AddItem(domain.Item{ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: MaxQuantityPerItem})
	repo.On("Get", ctx, "sess-1").Return(cart, nil)

	_, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 1,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save")
}

func TestAddItem_SaveError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(assert.AnError)

	_, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Whey Protein 1kg", Price: 4500, Quantity: 1,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save cart")
}

// --- UpdateQuantity ---

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 0)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	repo.AssertExpectations(t)
}

func TestUpdateQuantity_MissingProductIsSilentNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 99, 3)

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertNotCalled(t, "Save")
}

// --- RemoveItem ---

func TestRemoveItem(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.RemoveItem(ctx, "sess-1", 1)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	repo.AssertExpectations(t)
}

func TestRemoveItem_MissingProductIsSilentNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithWhey("sess-1"), nil)

	cart, err := svc.RemoveItem(ctx, "sess-1", 99)

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	repo.AssertNotCalled(t, "Save")
}

// --- ClearCart ---

func TestClearCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "sess-1").Return(nil)

	err := svc.ClearCart(ctx, "sess-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestClearCart_DeleteError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "sess-1").Return(assert.AnError)

	err := svc.ClearCart(ctx, "sess-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete cart")
}
