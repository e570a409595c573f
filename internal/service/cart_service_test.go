package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
)

func TestCartService_AddItemResyncs(t *testing.T) {
	be := new(MockBackend)
	svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
	ctx := context.Background()

	be.On("AddToCart", ctx, "u1", "m1", 1, mock.MatchedBy(decimalEq("5.00"))).Return(sampleCart(), nil).Once()
	be.On("Cart", ctx, "u1").Return(sampleCart(), nil).Once()

	cart, err := svc.AddItem(ctx, "u1", "m1", 1, decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount())
	be.AssertExpectations(t)
}

func TestCartService_RequiresSignIn(t *testing.T) {
	be := new(MockBackend)
	svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)

	_, err := svc.FetchCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrNotSignedIn)

	_, err = svc.AddItem(context.Background(), "", "m1", 1, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrNotSignedIn)
	be.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  error
		expects  bool
	}{
		{name: "valid quantity", quantity: 3, expects: true},
		{name: "zero refused", quantity: 0, wantErr: apperrors.ErrInvalidQuantity},
		{name: "negative refused", quantity: -2, wantErr: apperrors.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := new(MockBackend)
			svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
			ctx := context.Background()

			if tt.expects {
				be.On("UpdateCartItem", ctx, "u1", "m1", tt.quantity).Return(nil).Once()
				be.On("Cart", ctx, "u1").Return(sampleCart(), nil).Once()
			}

			_, err := svc.SetQuantity(ctx, "u1", "m1", tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				be.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			be.AssertExpectations(t)
		})
	}
}

func TestCartService_IncrementDecrement(t *testing.T) {
	ctx := context.Background()

	t.Run("increment adds one", func(t *testing.T) {
		be := new(MockBackend)
		svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
		be.On("Cart", ctx, "u1").Return(sampleCart(), nil)
		be.On("UpdateCartItem", ctx, "u1", "m1", 3).Return(nil).Once()

		_, err := svc.Increment(ctx, "u1", "m1")
		require.NoError(t, err)
		be.AssertExpectations(t)
	})

	t.Run("decrement subtracts one", func(t *testing.T) {
		be := new(MockBackend)
		svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
		be.On("Cart", ctx, "u1").Return(sampleCart(), nil)
		be.On("UpdateCartItem", ctx, "u1", "m1", 1).Return(nil).Once()

		_, err := svc.Decrement(ctx, "u1", "m1")
		require.NoError(t, err)
		be.AssertExpectations(t)
	})

	t.Run("decrement at one makes no update", func(t *testing.T) {
		be := new(MockBackend)
		svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
		be.On("Cart", ctx, "u1").Return(sampleCart(), nil)

		cart, err := svc.Decrement(ctx, "u1", "m2")
		require.NoError(t, err)
		line, ok := cart.Find("m2")
		require.True(t, ok)
		assert.Equal(t, 1, line.Quantity)
		be.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown line", func(t *testing.T) {
		be := new(MockBackend)
		svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
		be.On("Cart", ctx, "u1").Return(sampleCart(), nil)

		_, err := svc.Increment(ctx, "u1", "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	be := new(MockBackend)
	svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
	ctx := context.Background()

	be.On("RemoveCartItem", ctx, "u1", "m1").Return(nil).Once()
	be.On("Cart", ctx, "u1").Return(emptyCart(), nil).Once()

	cart, err := svc.RemoveItem(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	be.AssertExpectations(t)
}

func TestCartService_BackendErrorPropagates(t *testing.T) {
	be := new(MockBackend)
	svc := NewCartService(be, model.DefaultDeliveryFee, nopLog)
	ctx := context.Background()
	boom := errors.New("boom")

	be.On("RemoveCartItem", ctx, "u1", "m1").Return(boom).Once()

	_, err := svc.RemoveItem(ctx, "u1", "m1")
	assert.ErrorIs(t, err, boom)
	be.AssertNotCalled(t, "Cart", mock.Anything, mock.Anything)
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(sampleCart(), model.DefaultDeliveryFee)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("12.50")), totals.Subtotal.String())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("15.49")), totals.Total.String())

	empty := ComputeTotals(nil, model.DefaultDeliveryFee)
	assert.True(t, empty.Total.Equal(model.DefaultDeliveryFee))
}
