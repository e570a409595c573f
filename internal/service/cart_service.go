package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
)

// CartService manages the server-resident cart. Every mutation is followed by
// a full re-fetch so callers always see the backend's last-known state.
type CartService interface {
	FetchCart(ctx context.Context, userID string) (*model.Cart, error)
	AddItem(ctx context.Context, userID, menuItemID string, quantity int, price decimal.Decimal) (*model.Cart, error)
	SetQuantity(ctx context.Context, userID, menuItemID string, quantity int) (*model.Cart, error)
	Increment(ctx context.Context, userID, menuItemID string) (*model.Cart, error)
	Decrement(ctx context.Context, userID, menuItemID string) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, menuItemID string) (*model.Cart, error)
	Totals(cart *model.Cart) Totals
}

type cartService struct {
	backend     CartBackend
	deliveryFee decimal.Decimal
	log         zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(backend CartBackend, deliveryFee decimal.Decimal, log zerolog.Logger) CartService {
	return &cartService{
		backend:     backend,
		deliveryFee: deliveryFee,
		log:         log.With().Str("component", "cart").Logger(),
	}
}

// FetchCart returns the cart, or nil when the user has none yet.
func (s *cartService) FetchCart(ctx context.Context, userID string) (*model.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	cart, err := s.backend.Cart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	return cart, nil
}

// AddItem adds quantity units at the given captured price.
func (s *cartService) AddItem(ctx context.Context, userID, menuItemID string, quantity int, price decimal.Decimal) (*model.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}
	if _, err := s.backend.AddToCart(ctx, userID, menuItemID, quantity, price); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return s.FetchCart(ctx, userID)
}

// SetQuantity sets a line's quantity. Quantities below 1 are refused; removal
// is a separate action.
func (s *cartService) SetQuantity(ctx context.Context, userID, menuItemID string, quantity int) (*model.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}
	if err := s.backend.UpdateCartItem(ctx, userID, menuItemID, quantity); err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return s.FetchCart(ctx, userID)
}

// Increment adds one unit to a line.
func (s *cartService) Increment(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	line, err := s.line(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}
	return s.SetQuantity(ctx, userID, menuItemID, line.Quantity+1)
}

// Decrement removes one unit from a line, never going below 1.
func (s *cartService) Decrement(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	line, err := s.line(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}
	if line.Quantity <= 1 {
		return s.FetchCart(ctx, userID)
	}
	return s.SetQuantity(ctx, userID, menuItemID, line.Quantity-1)
}

// RemoveItem deletes a line.
func (s *cartService) RemoveItem(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if err := s.backend.RemoveCartItem(ctx, userID, menuItemID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return s.FetchCart(ctx, userID)
}

// Totals computes subtotal, fee and total for display.
func (s *cartService) Totals(cart *model.Cart) Totals {
	return ComputeTotals(cart, s.deliveryFee)
}

func (s *cartService) line(ctx context.Context, userID, menuItemID string) (model.CartItem, error) {
	cart, err := s.FetchCart(ctx, userID)
	if err != nil {
		return model.CartItem{}, err
	}
	line, ok := cart.Find(menuItemID)
	if !ok {
		return model.CartItem{}, fmt.Errorf("cart item %s: %w", menuItemID, apperrors.ErrNotFound)
	}
	return line, nil
}
