package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Tags
	}{
		{name: "single string", raw: `"Indian"`, want: Tags{"Indian"}},
		{name: "comma separated", raw: `"Indian, Chinese ,"`, want: Tags{"Indian", "Chinese"}},
		{name: "array", raw: `["Thai","Vegan"]`, want: Tags{"Thai", "Vegan"}},
		{name: "null", raw: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Tags
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuItem_RestaurantRefForms(t *testing.T) {
	var bare MenuItem
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m1","restaurant":"r1","price":4.5}`), &bare))
	assert.Equal(t, "r1", bare.Restaurant.ID)
	assert.Nil(t, bare.Restaurant.Restaurant)

	var populated MenuItem
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m1","restaurant":{"_id":"r1","name":"Spice"},"price":"4.50"}`), &populated))
	assert.Equal(t, "r1", populated.Restaurant.ID)
	require.NotNil(t, populated.Restaurant.Restaurant)
	assert.Equal(t, "Spice", populated.Restaurant.Restaurant.Name)
	assert.True(t, populated.Price.Equal(decimal.RequireFromString("4.5")))

	out, err := json.Marshal(populated.Restaurant)
	require.NoError(t, err)
	assert.JSONEq(t, `"r1"`, string(out))
}

func TestCart_SubtotalAndCount(t *testing.T) {
	raw := `{
		"_id": "c1",
		"user": "u1",
		"items": [
			{"menuItem": {"_id": "m1", "price": 5, "restaurant": "r1"}, "quantity": 2, "price": 4.25},
			{"menuItem": {"_id": "m2", "price": 4, "restaurant": "r1"}, "quantity": 1}
		],
		"total": 12.5
	}`
	var cart Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))

	assert.Equal(t, "12.50", cart.Subtotal().StringFixed(2), "captured price wins, menu price is the fallback")
	assert.Equal(t, 3, cart.ItemCount())
	assert.False(t, cart.IsEmpty())
	assert.Equal(t, "r1", cart.Items[0].RestaurantID())

	line, ok := cart.Find("m2")
	assert.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_NilIsEmpty(t *testing.T) {
	var cart *Cart
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
	assert.Equal(t, 0, cart.ItemCount())
}

func TestLinesFromCart(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{MenuItem: MenuItemRef{ID: "m1"}, Quantity: 2},
		{MenuItem: MenuItemRef{ID: "m2"}, Quantity: 1},
	}}

	assert.Equal(t, []OrderLine{{MenuItem: "m1", Quantity: 2}, {MenuItem: "m2", Quantity: 1}}, LinesFromCart(cart))
}

func TestReview_UserRef(t *testing.T) {
	var r Review
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"rv1","user":{"_id":"u1","name":"Ann"},"rating":4,"comment":"ok"}`), &r))
	assert.Equal(t, "u1", r.User.ID)
	assert.Equal(t, "Ann", r.User.Name())
}
