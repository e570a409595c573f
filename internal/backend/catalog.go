package backend

import (
	"context"
	"net/http"
	"net/url"

	"foodcart/internal/model"
)

// ExploreQuery filters the explore listing. Empty fields are omitted.
type ExploreQuery struct {
	Category string
	Sort     string
	Search   string
}

func (q ExploreQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// Restaurants lists every restaurant.
func (c *Client) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	if err := c.do(ctx, request{method: http.MethodGet, path: "/restaurants"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Restaurant fetches one restaurant.
func (c *Client) Restaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	var out model.Restaurant
	if err := c.do(ctx, request{method: http.MethodGet, path: path("restaurants", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestaurantMenu lists the menu items of a restaurant.
func (c *Client) RestaurantMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	var out []model.MenuItem
	if err := c.do(ctx, request{method: http.MethodGet, path: path("restaurants", restaurantID, "menuitems")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MenuItem fetches one menu item. The backend has exposed it under two paths;
// menuitems/{id} is tried first, then menu-items/{id}.
func (c *Client) MenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	var out model.MenuItem
	err := withFallback(
		func() error {
			return c.do(ctx, request{method: http.MethodGet, path: path("menuitems", id)}, &out)
		},
		func() error {
			out = model.MenuItem{}
			return c.do(ctx, request{method: http.MethodGet, path: path("menu-items", id)}, &out)
		},
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists the explore categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, request{method: http.MethodGet, path: "/categories"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Explore searches, filters and sorts menu items across restaurants.
func (c *Client) Explore(ctx context.Context, q ExploreQuery) ([]model.MenuItem, error) {
	var out []model.MenuItem
	if err := c.do(ctx, request{method: http.MethodGet, path: "/explore", query: q.values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
