package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client(), zerolog.Nop())
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Cart is empty"}`, wantMessage: "Cart is empty"},
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"Invalid credentials"}`, wantMessage: "Invalid credentials"},
		{name: "no json", status: http.StatusInternalServerError, body: `boom`, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Restaurants(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.BackendMessage())
			assert.Equal(t, firstNonEmpty(tt.wantMessage, "fallback"), apperrors.UserMessage(err, "fallback"))
		})
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewWithHTTPClient(url, http.DefaultClient, zerolog.Nop())
	_, err := client.Restaurants(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Equal(t, "Payment initialization failed", apperrors.UserMessage(err, "Payment initialization failed"))
}

func TestClient_CartAbsentOn404(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/u1", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	cart, err := client.Cart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestClient_AddToCartBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/u1/add", r.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "m1", body["menuItem"])
		assert.Equal(t, float64(1), body["quantity"])
		assert.Equal(t, 4.5, body["price"])

		_, _ = w.Write([]byte(`{"_id":"c1","items":[{"menuItem":{"_id":"m1","price":4.5},"quantity":1,"price":4.5}]}`))
	})

	cart, err := client.AddToCart(context.Background(), "u1", "m1", 1, decimal.RequireFromString("4.50"))
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestClient_MenuItemFallsBackToAlternatePath(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/menuitems/m1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"_id":"m1","name":"Paneer Tikka","price":8,"restaurant":{"_id":"r1","name":"Spice"}}`))
	})

	item, err := client.MenuItem(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/menuitems/m1", "/menu-items/m1"}, paths)
	assert.Equal(t, "Paneer Tikka", item.Name)
	assert.Equal(t, "r1", item.Restaurant.ID)
}

func TestClient_MenuItemReviewsFallback(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/reviews/menuitem/m1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"_id":"rv1","user":"u1","rating":4,"comment":"good"}]`))
	})

	reviews, err := client.MenuItemReviews(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/reviews/menuitem/m1", "/reviews/menu-item/m1"}, paths)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
}

func TestClient_ExploreQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/explore", r.URL.Path)
		assert.Equal(t, "Pizza", r.URL.Query().Get("category"))
		assert.Equal(t, "price-asc", r.URL.Query().Get("sort"))
		assert.False(t, r.URL.Query().Has("search"))
		_, _ = w.Write([]byte(`[]`))
	})

	items, err := client.Explore(context.Background(), ExploreQuery{Category: "Pizza", Sort: "price-asc"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_CreateOrderBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		assert.Equal(t, "r1", body["restaurant"])
		assert.Equal(t, 15.49, body["totalAmount"])
		assert.Equal(t, "cod", body["paymentMethod"])
		assert.Nil(t, body["paymentDetails"])
		_, _ = w.Write([]byte(`{"success":true,"message":"Order created"}`))
	})

	res, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:          "u1",
		Restaurant:      "r1",
		Items:           []model.OrderLine{{MenuItem: "m1", Quantity: 1}},
		TotalAmount:     15.49,
		DeliveryAddress: "221B Baker St",
		PaymentMethod:   model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestClient_AdminCallsCarryBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/admin/menuitems/m1", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteMenuItem(context.Background(), "admin-token", "m1"))
}

func TestAPIError_NotFoundMatches(t *testing.T) {
	err := &APIError{StatusCode: http.StatusNotFound}
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(&APIError{StatusCode: http.StatusBadRequest}))
}
