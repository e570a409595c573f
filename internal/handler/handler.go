package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"foodcart/internal/errors"
	"foodcart/internal/session"
)

// Timing holds the UI delays sent alongside messages and redirects.
type Timing struct {
	RedirectDelay time.Duration
	MessageTTL    time.Duration
}

// Viewer describes who is browsing, for the navigation bar.
type Viewer struct {
	SignedIn      bool   `json:"signedIn"`
	UserID        string `json:"userId,omitempty"`
	IsAdmin       bool   `json:"isAdmin"`
	AdminUsername string `json:"adminUsername,omitempty"`
}

// Flash is a transient banner.
type Flash struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	DismissAfter int64  `json:"dismissAfterMs,omitempty"`
}

// RedirectResponse tells the browser where to go next.
type RedirectResponse struct {
	Message         string `json:"message,omitempty"`
	Redirect        string `json:"redirect"`
	RedirectAfterMs int64  `json:"redirectAfterMs"`
}

func viewerOf(sess *session.Session) Viewer {
	return Viewer{
		SignedIn:      sess.SignedIn(),
		UserID:        sess.UserID(),
		IsAdmin:       sess.IsAdmin(),
		AdminUsername: sess.AdminUsername(),
	}
}

func (t Timing) success(message string) *Flash {
	return &Flash{Message: message, Type: "success", DismissAfter: t.MessageTTL.Milliseconds()}
}

// fail maps err to the JSON error body. fallback is shown when err carries no
// user-facing message.
func (t Timing) fail(err error, fallback string) error {
	httpErr := errors.MapErrorToHTTP(err, fallback)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse(t.RedirectDelay))
}

// loginRequired is the 401 sent to signed-out users, with a delayed redirect to /login.
func (t Timing) loginRequired(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error:           message,
		Code:            "NOT_SIGNED_IN",
		Redirect:        "/login",
		RedirectAfterMs: t.RedirectDelay.Milliseconds(),
	})
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// bind decodes and validates a request body.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest()
	}
	if err := c.Validate(req); err != nil {
		return validationFailed(err)
	}
	return nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
