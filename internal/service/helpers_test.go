package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"foodcart/internal/model"
	"foodcart/internal/session"
)

func newSignedInSession(t *testing.T, userID string) *session.Session {
	t.Helper()
	sess := session.New("sess-1", session.NewMemoryStore(0))
	require.NoError(t, sess.Init(context.Background()))
	if userID != "" {
		require.NoError(t, sess.SignIn(context.Background(), userID))
	}
	return sess
}

func menuItem(id, restaurantID, price string) *model.MenuItem {
	return &model.MenuItem{
		ID:         id,
		Name:       "Item " + id,
		Restaurant: model.RestaurantRef{ID: restaurantID},
		Price:      decimal.RequireFromString(price),
	}
}

// sampleCart has a 12.50 subtotal: 2 x 5.00 and 1 x 2.50, both from r1.
func sampleCart() *model.Cart {
	return &model.Cart{
		ID:   "c1",
		User: model.UserRef{ID: "u1"},
		Items: []model.CartItem{
			{MenuItem: model.MenuItemRef{ID: "m1", MenuItem: menuItem("m1", "r1", "5.00")}, Quantity: 2, Price: decimal.RequireFromString("5.00")},
			{MenuItem: model.MenuItemRef{ID: "m2", MenuItem: menuItem("m2", "r1", "2.50")}, Quantity: 1, Price: decimal.RequireFromString("2.50")},
		},
	}
}

func emptyCart() *model.Cart {
	return &model.Cart{ID: "c1", User: model.UserRef{ID: "u1"}}
}

func decimalEq(want string) interface{} {
	w := decimal.RequireFromString(want)
	return func(got decimal.Decimal) bool { return got.Equal(w) }
}

var nopLog = zerolog.Nop()
