package service

import (
	"context"

	"github.com/shopspring/decimal"

	"foodcart/internal/backend"
	"foodcart/internal/model"
)

// CatalogBackend is the catalog slice of the REST API.
type CatalogBackend interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	Restaurant(ctx context.Context, id string) (*model.Restaurant, error)
	RestaurantMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	MenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
	Explore(ctx context.Context, q backend.ExploreQuery) ([]model.MenuItem, error)
}

// CartBackend is the cart slice of the REST API.
type CartBackend interface {
	Cart(ctx context.Context, userID string) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, menuItemID string, quantity int, price decimal.Decimal) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, menuItemID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, menuItemID string) error
}

// OrderBackend is the order and payment slice of the REST API.
type OrderBackend interface {
	CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (*backend.OrderResult, error)
	CreatePaymentOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*model.GatewayOrder, error)
	VerifyPayment(ctx context.Context, req backend.VerifyPaymentRequest) (*backend.OrderResult, error)
}

// ReviewBackend is the reviews slice of the REST API.
type ReviewBackend interface {
	RestaurantReviews(ctx context.Context, restaurantID string) ([]model.Review, error)
	MenuItemReviews(ctx context.Context, menuItemID string) ([]model.Review, error)
	CreateRestaurantReview(ctx context.Context, userID, restaurantID string, rating int, comment string) error
	CreateMenuItemReview(ctx context.Context, userID, menuItemID string, rating int, comment string) error
	DeleteReview(ctx context.Context, reviewID string) error
}

// AccountBackend is the user account slice of the REST API.
type AccountBackend interface {
	User(ctx context.Context, id string) (*model.User, error)
	Register(ctx context.Context, req backend.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*model.User, error)
	GoogleLogin(ctx context.Context, credential string) (*model.User, error)
}

// AdminBackend is the admin slice of the REST API.
type AdminBackend interface {
	AdminLogin(ctx context.Context, username, password string) (*backend.AdminLoginResult, error)
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	RestaurantMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	CreateRestaurant(ctx context.Context, token string, in backend.RestaurantInput) error
	UpdateRestaurant(ctx context.Context, token, id string, in backend.RestaurantInput) error
	DeleteRestaurant(ctx context.Context, token, id string) error
	CreateMenuItem(ctx context.Context, token, restaurantID string, in backend.MenuItemInput) error
	UpdateMenuItem(ctx context.Context, token, id string, in backend.MenuItemInput) error
	DeleteMenuItem(ctx context.Context, token, id string) error
}

var (
	_ CatalogBackend = (*backend.Client)(nil)
	_ CartBackend    = (*backend.Client)(nil)
	_ OrderBackend   = (*backend.Client)(nil)
	_ ReviewBackend  = (*backend.Client)(nil)
	_ AccountBackend = (*backend.Client)(nil)
	_ AdminBackend   = (*backend.Client)(nil)
)
