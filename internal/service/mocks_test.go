package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"foodcart/internal/backend"
	"foodcart/internal/model"
)

// MockBackend is a mock implementation of every backend slice.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockBackend) Restaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockBackend) RestaurantMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockBackend) MenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockBackend) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBackend) Explore(ctx context.Context, q backend.ExploreQuery) ([]model.MenuItem, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockBackend) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockBackend) AddToCart(ctx context.Context, userID, menuItemID string, quantity int, price decimal.Decimal) (*model.Cart, error) {
	args := m.Called(ctx, userID, menuItemID, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockBackend) UpdateCartItem(ctx context.Context, userID, menuItemID string, quantity int) error {
	args := m.Called(ctx, userID, menuItemID, quantity)
	return args.Error(0)
}

func (m *MockBackend) RemoveCartItem(ctx context.Context, userID, menuItemID string) error {
	args := m.Called(ctx, userID, menuItemID)
	return args.Error(0)
}

func (m *MockBackend) CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (*backend.OrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.OrderResult), args.Error(1)
}

func (m *MockBackend) CreatePaymentOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*model.GatewayOrder, error) {
	args := m.Called(ctx, amount, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GatewayOrder), args.Error(1)
}

func (m *MockBackend) VerifyPayment(ctx context.Context, req backend.VerifyPaymentRequest) (*backend.OrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.OrderResult), args.Error(1)
}

func (m *MockBackend) RestaurantReviews(ctx context.Context, restaurantID string) ([]model.Review, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockBackend) MenuItemReviews(ctx context.Context, menuItemID string) ([]model.Review, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockBackend) CreateRestaurantReview(ctx context.Context, userID, restaurantID string, rating int, comment string) error {
	args := m.Called(ctx, userID, restaurantID, rating, comment)
	return args.Error(0)
}

func (m *MockBackend) CreateMenuItemReview(ctx context.Context, userID, menuItemID string, rating int, comment string) error {
	args := m.Called(ctx, userID, menuItemID, rating, comment)
	return args.Error(0)
}

func (m *MockBackend) DeleteReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockBackend) User(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, req backend.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockBackend) GoogleLogin(ctx context.Context, credential string) (*model.User, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockBackend) AdminLogin(ctx context.Context, username, password string) (*backend.AdminLoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AdminLoginResult), args.Error(1)
}

func (m *MockBackend) CreateRestaurant(ctx context.Context, token string, in backend.RestaurantInput) error {
	args := m.Called(ctx, token, in)
	return args.Error(0)
}

func (m *MockBackend) UpdateRestaurant(ctx context.Context, token, id string, in backend.RestaurantInput) error {
	args := m.Called(ctx, token, id, in)
	return args.Error(0)
}

func (m *MockBackend) DeleteRestaurant(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBackend) CreateMenuItem(ctx context.Context, token, restaurantID string, in backend.MenuItemInput) error {
	args := m.Called(ctx, token, restaurantID, in)
	return args.Error(0)
}

func (m *MockBackend) UpdateMenuItem(ctx context.Context, token, id string, in backend.MenuItemInput) error {
	args := m.Called(ctx, token, id, in)
	return args.Error(0)
}

func (m *MockBackend) DeleteMenuItem(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockJournal records journal entries.
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Record(ctx context.Context, entry model.CheckoutLog) {
	m.Called(ctx, entry)
}

// MockCheckoutLogRepository is a mock implementation of CheckoutLogRepository.
type MockCheckoutLogRepository struct {
	mock.Mock
}

func (m *MockCheckoutLogRepository) Create(ctx context.Context, log *model.CheckoutLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockCheckoutLogRepository) CreateBatch(ctx context.Context, logs []model.CheckoutLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

func (m *MockCheckoutLogRepository) FindByGatewayOrder(ctx context.Context, gatewayOrderID string) ([]model.CheckoutLog, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CheckoutLog), args.Error(1)
}
