package errors

import (
	"errors"
	"net/http"
	"time"
)

var (
	// ErrNotSignedIn is returned when a view needs a signed-in user and the session has none.
	ErrNotSignedIn = errors.New("please login to continue")
	// ErrAdminRequired is returned when an admin route is hit without an admin token.
	ErrAdminRequired = errors.New("admin login required")
	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrInvalidTransition is returned when a checkout action does not apply to the current state.
	ErrInvalidTransition = errors.New("checkout action not allowed in current state")
	// ErrNoPendingPayment is returned when a payment callback arrives with no gateway order awaiting it.
	ErrNoPendingPayment = errors.New("no payment is awaiting confirmation")
	// ErrReviewNotOwned is returned when a user tries to delete someone else's review.
	ErrReviewNotOwned = errors.New("you can only delete your own reviews")
	// ErrInvalidRating is returned when a rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidQuantity is returned when a cart quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrNotFound is returned when the backend has no such resource.
	ErrNotFound = errors.New("not found")
	// ErrProfileMissing is returned when the profile view has no signed-in user.
	ErrProfileMissing = errors.New("user not logged in")
	// ErrInvalidAdminResponse is returned when the admin login reply carries no token.
	ErrInvalidAdminResponse = errors.New("invalid response from server")
)

// bannerText is the user-facing wording for errors whose Go message is not shown as is.
var bannerText = map[error]string{
	ErrProfileMissing:       "User not logged in.",
	ErrInvalidAdminResponse: "Invalid response from server",
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error           string `json:"error"`
	Code            string `json:"code"`
	Field           string `json:"field,omitempty"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMs int64  `json:"redirectAfterMs,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
	Redirect   string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse. delay is attached
// when the error carries a redirect so the message can be read first.
func (e *HTTPError) ToErrorResponse(delay time.Duration) ErrorResponse {
	resp := ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
	if e.Redirect != "" {
		resp.Redirect = e.Redirect
		resp.RedirectAfterMs = delay.Milliseconds()
	}
	return resp
}

// ValidationError reports a form field that failed validation before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BackendError is implemented by errors carrying a message supplied by the backend.
type BackendError interface {
	error
	Status() int
	BackendMessage() string
}

// UserMessage turns err into the banner text shown to the user. Backend supplied
// messages win, then validation and domain messages, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var be BackendError
	if errors.As(err, &be) {
		if msg := be.BackendMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	for sentinel, text := range bannerText {
		if errors.Is(err, sentinel) {
			return text
		}
	}
	for _, known := range []error{
		ErrNotSignedIn, ErrAdminRequired, ErrEmptyCart, ErrInvalidTransition,
		ErrNoPendingPayment, ErrReviewNotOwned, ErrInvalidRating, ErrInvalidQuantity,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}

// MapErrorToHTTP maps domain errors to HTTP errors. fallback is the banner text
// used when nothing more specific is known.
func MapErrorToHTTP(err error, fallback string) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		httpErr := NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_ERROR")
		httpErr.Field = ve.Field
		return httpErr
	}

	switch {
	case errors.Is(err, ErrNotSignedIn):
		httpErr := NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_SIGNED_IN")
		httpErr.Redirect = "/login"
		return httpErr
	case errors.Is(err, ErrProfileMissing):
		return NewHTTPError(http.StatusUnauthorized, UserMessage(err, fallback), "NOT_SIGNED_IN")
	case errors.Is(err, ErrInvalidAdminResponse):
		return NewHTTPError(http.StatusBadGateway, UserMessage(err, fallback), "BACKEND_ERROR")
	case errors.Is(err, ErrAdminRequired):
		httpErr := NewHTTPError(http.StatusUnauthorized, err.Error(), "ADMIN_REQUIRED")
		httpErr.Redirect = "/admin/login"
		return httpErr
	case errors.Is(err, ErrEmptyCart):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMPTY_CART")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrNoPendingPayment):
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_PENDING_PAYMENT")
	case errors.Is(err, ErrReviewNotOwned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "REVIEW_NOT_OWNED")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, UserMessage(err, fallback), "NOT_FOUND")
	}

	var be BackendError
	if errors.As(err, &be) {
		return NewHTTPError(http.StatusBadGateway, UserMessage(err, fallback), "BACKEND_ERROR")
	}
	return NewHTTPError(http.StatusInternalServerError, fallback, "INTERNAL_ERROR")
}
