package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"foodcart/internal/auth"
)

const contextKey = "session"

// TokenContextKey is where the echo-jwt middleware leaves the validated cookie claims.
const TokenContextKey = "user"

// Middleware resolves the browser session from the cookie claims validated
// upstream by echo-jwt. Browsers without a valid token get a new session and cookie.
func Middleware(tokens *auth.TokenService, store Store, secureCookies bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if claims, ok := c.Get(TokenContextKey).(*auth.Claims); ok {
				sessionID = claims.SessionID()
			}

			if sessionID == "" {
				id, signed, err := tokens.NewSession()
				if err != nil {
					log.Error().Err(err).Msg("issue session token")
					return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
				}
				sessionID = id
				c.SetCookie(&http.Cookie{
					Name:     auth.CookieName,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(tokens.TTL().Seconds()),
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := New(sessionID, store)
			if err := sess.Init(c.Request().Context()); err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("load session")
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}
			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// FromContext returns the session set by Middleware.
func FromContext(c echo.Context) *Session {
	sess, _ := c.Get(contextKey).(*Session)
	return sess
}

// WithSession attaches a session to c; used by tests and tools.
func WithSession(c echo.Context, sess *Session) {
	c.Set(contextKey, sess)
}
