package backend

import (
	"context"
	"net/http"

	"foodcart/internal/model"
)

// RestaurantInput is the admin restaurant form as sent to the backend.
type RestaurantInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Cuisine  string `json:"cuisine"`
	ImageURL string `json:"imageUrl"`
}

// MenuItemInput is the admin menu item form as sent to the backend.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// AdminLoginResult carries the admin session token.
type AdminLoginResult struct {
	Token string      `json:"token"`
	Admin model.Admin `json:"admin"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates an admin.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error) {
	var out AdminLoginResult
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/admin/login",
		body:   adminLoginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRestaurant adds a restaurant.
func (c *Client) CreateRestaurant(ctx context.Context, token string, in RestaurantInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/admin/restaurants", body: in, token: token}, nil)
}

// UpdateRestaurant edits a restaurant.
func (c *Client) UpdateRestaurant(ctx context.Context, token, id string, in RestaurantInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: path("admin", "restaurants", id), body: in, token: token}, nil)
}

// DeleteRestaurant removes a restaurant.
func (c *Client) DeleteRestaurant(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "restaurants", id), token: token}, nil)
}

// CreateMenuItem adds a menu item to a restaurant.
func (c *Client) CreateMenuItem(ctx context.Context, token, restaurantID string, in MenuItemInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: path("admin", "restaurants", restaurantID, "menuitems"), body: in, token: token}, nil)
}

// UpdateMenuItem edits a menu item.
func (c *Client) UpdateMenuItem(ctx context.Context, token, id string, in MenuItemInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: path("admin", "menuitems", id), body: in, token: token}, nil)
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "menuitems", id), token: token}, nil)
}
