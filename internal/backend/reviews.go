package backend

import (
	"context"
	"net/http"

	"foodcart/internal/model"
)

type restaurantReviewRequest struct {
	User       string `json:"user"`
	Restaurant string `json:"restaurant"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type menuItemReviewRequest struct {
	User     string `json:"user"`
	MenuItem string `json:"menuItem"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// RestaurantReviews lists reviews of a restaurant.
func (c *Client) RestaurantReviews(ctx context.Context, restaurantID string) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, request{method: http.MethodGet, path: path("reviews", "restaurant", restaurantID)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MenuItemReviews lists reviews of a menu item, trying reviews/menuitem/{id}
// before reviews/menu-item/{id}.
func (c *Client) MenuItemReviews(ctx context.Context, menuItemID string) ([]model.Review, error) {
	var out []model.Review
	err := withFallback(
		func() error {
			return c.do(ctx, request{method: http.MethodGet, path: path("reviews", "menuitem", menuItemID)}, &out)
		},
		func() error {
			out = nil
			return c.do(ctx, request{method: http.MethodGet, path: path("reviews", "menu-item", menuItemID)}, &out)
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRestaurantReview posts a review of a restaurant.
func (c *Client) CreateRestaurantReview(ctx context.Context, userID, restaurantID string, rating int, comment string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/reviews",
		body:   restaurantReviewRequest{User: userID, Restaurant: restaurantID, Rating: rating, Comment: comment},
	}, nil)
}

// CreateMenuItemReview posts a review of a menu item.
func (c *Client) CreateMenuItemReview(ctx context.Context, userID, menuItemID string, rating int, comment string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/reviews/menu-item",
		body:   menuItemReviewRequest{User: userID, MenuItem: menuItemID, Rating: rating, Comment: comment},
	}, nil)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("reviews", reviewID)}, nil)
}
