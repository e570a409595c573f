package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBackendError struct {
	status  int
	message string
}

func (e *fakeBackendError) Error() string {
	return fmt.Sprintf("backend %d", e.status)
}

func (e *fakeBackendError) Status() int {
	return e.status
}

func (e *fakeBackendError) BackendMessage() string {
	return e.message
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"backend message wins", fmt.Errorf("place order: %w", &fakeBackendError{status: 400, message: "Out of stock"}), "Out of stock"},
		{"backend without message", &fakeBackendError{status: 500}, "Failed to place order"},
		{"validation", NewValidationError("deliveryAddress", "Please fill all required fields."), "Please fill all required fields."},
		{"domain", fmt.Errorf("add item: %w", ErrInvalidQuantity), ErrInvalidQuantity.Error()},
		{"admin reply", fmt.Errorf("admin login: %w", ErrInvalidAdminResponse), "Invalid response from server"},
		{"profile", ErrProfileMissing, "User not logged in."},
		{"unknown", errors.New("boom"), "Failed to place order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err, "Failed to place order"))
		})
	}
}

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationError("rating", "bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not signed in", fmt.Errorf("cart: %w", ErrNotSignedIn), http.StatusUnauthorized, "NOT_SIGNED_IN"},
		{"admin", ErrAdminRequired, http.StatusUnauthorized, "ADMIN_REQUIRED"},
		{"empty cart", ErrEmptyCart, http.StatusConflict, "EMPTY_CART"},
		{"transition", ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"no pending", ErrNoPendingPayment, http.StatusConflict, "NO_PENDING_PAYMENT"},
		{"not owned", ErrReviewNotOwned, http.StatusForbidden, "REVIEW_NOT_OWNED"},
		{"rating", ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
		{"quantity", ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"profile", ErrProfileMissing, http.StatusUnauthorized, "NOT_SIGNED_IN"},
		{"admin reply", ErrInvalidAdminResponse, http.StatusBadGateway, "BACKEND_ERROR"},
		{"backend", &fakeBackendError{status: 500, message: "db down"}, http.StatusBadGateway, "BACKEND_ERROR"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err, "Something went wrong")
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_ValidationCarriesField(t *testing.T) {
	httpErr := MapErrorToHTTP(NewValidationError("cardNumber", "Please enter your card details."), "x")
	assert.Equal(t, "cardNumber", httpErr.Field)
	assert.Equal(t, "Please enter your card details.", httpErr.Message)
}

func TestMapErrorToHTTP_InternalUsesFallback(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp: refused"), "Error placing order. Please try again.")
	assert.Equal(t, "Error placing order. Please try again.", httpErr.Message)
}

func TestToErrorResponse_RedirectDelay(t *testing.T) {
	resp := MapErrorToHTTP(ErrNotSignedIn, "x").ToErrorResponse(2 * time.Second)
	assert.Equal(t, "/login", resp.Redirect)
	assert.Equal(t, int64(2000), resp.RedirectAfterMs)

	resp = MapErrorToHTTP(ErrEmptyCart, "x").ToErrorResponse(2 * time.Second)
	assert.Empty(t, resp.Redirect)
	assert.Zero(t, resp.RedirectAfterMs)
}

func TestSentinelMessagesAreLowerCase(t *testing.T) {
	for _, err := range []error{
		ErrNotSignedIn, ErrAdminRequired, ErrEmptyCart, ErrInvalidTransition, ErrNoPendingPayment,
		ErrReviewNotOwned, ErrInvalidRating, ErrInvalidQuantity, ErrNotFound, ErrProfileMissing,
		ErrInvalidAdminResponse,
	} {
		msg := err.Error()
		assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
	}
}
