package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"foodcart/internal/backend"
	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
)

// Sort orders accepted by the products view.
var productSorts = map[string]bool{
	"":            true,
	"name":        true,
	"price-asc":   true,
	"price-desc":  true,
	"rating-desc": true,
}

// RestaurantDetail is the restaurant page: menu, reviews and cart badge.
type RestaurantDetail struct {
	Restaurant    *model.Restaurant
	Menu          []model.MenuItem
	Reviews       []model.Review
	CartItemCount int
}

// ProductsPage is the explore view with its category filter options.
type ProductsPage struct {
	Items      []model.MenuItem
	Categories []string
	Query      backend.ExploreQuery
}

// ItemDetail is the single menu item page.
type ItemDetail struct {
	Item    *model.MenuItem
	Reviews []model.Review
}

// CatalogService assembles the read-only catalog views.
type CatalogService interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	RestaurantDetail(ctx context.Context, restaurantID, userID string) (*RestaurantDetail, error)
	Products(ctx context.Context, q backend.ExploreQuery) (*ProductsPage, error)
	ExploreItem(ctx context.Context, menuItemID string) (*ItemDetail, error)
	AddToCart(ctx context.Context, userID, restaurantID, menuItemID string, quantity int) (*model.Cart, error)
}

type catalogService struct {
	catalog CatalogBackend
	reviews ReviewService
	carts   CartService
	log     zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog CatalogBackend, reviews ReviewService, carts CartService, log zerolog.Logger) CatalogService {
	return &catalogService{
		catalog: catalog,
		reviews: reviews,
		carts:   carts,
		log:     log.With().Str("component", "catalog").Logger(),
	}
}

func (s *catalogService) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.catalog.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// RestaurantDetail loads the restaurant with its menu and reviews. The cart
// badge is best effort and never fails the page.
func (s *catalogService) RestaurantDetail(ctx context.Context, restaurantID, userID string) (*RestaurantDetail, error) {
	restaurant, err := s.catalog.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	menu, err := s.catalog.RestaurantMenu(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	reviews, err := s.reviews.List(ctx, model.ReviewTargetRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}

	detail := &RestaurantDetail{Restaurant: restaurant, Menu: menu, Reviews: reviews}
	if userID != "" {
		cart, err := s.carts.FetchCart(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("cart badge unavailable")
		} else {
			detail.CartItemCount = cart.ItemCount()
		}
	}
	return detail, nil
}

// Products runs the explore query. "all" means no category filter.
func (s *catalogService) Products(ctx context.Context, q backend.ExploreQuery) (*ProductsPage, error) {
	q.Search = strings.TrimSpace(q.Search)
	if strings.EqualFold(q.Category, "all") {
		q.Category = ""
	}
	if !productSorts[q.Sort] {
		q.Sort = ""
	}

	items, err := s.catalog.Explore(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("explore menu items: %w", err)
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("categories unavailable")
		categories = nil
	}
	return &ProductsPage{Items: items, Categories: categories, Query: q}, nil
}

// ExploreItem loads one menu item; its reviews are best effort. When neither
// item review endpoint answers, the reviews of the item's restaurant are shown
// instead, provided the item came back with its restaurant populated.
func (s *catalogService) ExploreItem(ctx context.Context, menuItemID string) (*ItemDetail, error) {
	item, err := s.catalog.MenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	reviews, err := s.reviews.List(ctx, model.ReviewTargetMenuItem, menuItemID)
	if err == nil {
		return &ItemDetail{Item: item, Reviews: reviews}, nil
	}
	s.log.Warn().Err(err).Str("menu_item_id", menuItemID).Msg("item reviews unavailable")

	if item.Restaurant.Restaurant == nil || item.Restaurant.ID == "" {
		return &ItemDetail{Item: item}, nil
	}
	reviews, err = s.reviews.List(ctx, model.ReviewTargetRestaurant, item.Restaurant.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("restaurant_id", item.Restaurant.ID).Msg("restaurant reviews unavailable")
		reviews = nil
	}
	return &ItemDetail{Item: item, Reviews: reviews}, nil
}

// AddToCart adds a menu item at the price the catalog lists for it. A non-empty
// restaurantID must own the item.
func (s *catalogService) AddToCart(ctx context.Context, userID, restaurantID, menuItemID string, quantity int) (*model.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	item, err := s.catalog.MenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	if restaurantID != "" && item.Restaurant.ID != restaurantID {
		return nil, fmt.Errorf("menu item %s in restaurant %s: %w", menuItemID, restaurantID, apperrors.ErrNotFound)
	}
	if item.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price", "menu item has an invalid price")
	}
	return s.carts.AddItem(ctx, userID, menuItemID, quantity, item.Price)
}
