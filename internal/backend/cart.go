package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"foodcart/internal/model"
)

type addToCartRequest struct {
	MenuItem string  `json:"menuItem"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type updateCartRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// Cart fetches the user's cart. A missing cart is returned as nil without error.
func (c *Client) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	var out model.Cart
	if err := c.do(ctx, request{method: http.MethodGet, path: path("cart", userID)}, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// AddToCart adds quantity of a menu item at the given unit price.
func (c *Client) AddToCart(ctx context.Context, userID, menuItemID string, quantity int, price decimal.Decimal) (*model.Cart, error) {
	var out model.Cart
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path("cart", userID, "add"),
		body: addToCartRequest{
			MenuItem: menuItemID,
			Quantity: quantity,
			Price:    price.InexactFloat64(),
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem sets the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, userID, menuItemID string, quantity int) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   path("cart", userID, "update"),
		body:   updateCartRequest{MenuItemID: menuItemID, Quantity: quantity},
	}, nil)
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, userID, menuItemID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("cart", userID, "remove", menuItemID)}, nil)
}
