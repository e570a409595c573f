package backend

import (
	"context"
	"net/http"

	"foodcart/internal/model"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	ContactNo string `json:"contactno"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	User model.User `json:"user"`
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, request{method: http.MethodGet, path: path("users", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/register", body: req}, nil)
}

// Login checks credentials and returns the user.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out loginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/login", body: loginRequest{Email: email, Password: password}}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GoogleLogin exchanges a Google credential for the user.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*model.User, error) {
	var out loginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/google", body: googleLoginRequest{Token: credential}}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
