package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/service"
	"foodcart/internal/session"
)

// AccountHandler handles customer sign-up, sign-in and profile.
type AccountHandler struct {
	accounts service.AccountService
	timing   Timing
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts service.AccountService, timing Timing) *AccountHandler {
	return &AccountHandler{accounts: accounts, timing: timing}
}

// LoginRequest represents a customer login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// GoogleLoginRequest carries the Google credential.
type GoogleLoginRequest struct {
	Token string `json:"token" form:"token" validate:"required"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Redirect string `json:"redirect"`
}

// ProfileView is the profile page.
type ProfileView struct {
	Viewer Viewer     `json:"viewer"`
	User   model.User `json:"user"`
}

// Register godoc
// @Summary Register a customer account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body service.RegisterForm true "Registration data"
// @Success 201 {object} RedirectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req service.RegisterForm
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.accounts.Register(c.Request().Context(), req); err != nil {
		return h.timing.fail(err, "Registration failed. Please try again.")
	}
	return c.JSON(http.StatusCreated, RedirectResponse{
		Message:         "Registration successful! Redirecting to login...",
		Redirect:        "/login",
		RedirectAfterMs: h.timing.RedirectDelay.Milliseconds(),
	})
}

// Login godoc
// @Summary Sign in with email and password
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.Login(c.Request().Context(), session.FromContext(c), req.Email, req.Password)
	if err != nil {
		return h.timing.fail(err, "Login failed")
	}
	return c.JSON(http.StatusOK, LoginResponse{UserID: user.ID, Name: user.Name, Redirect: "/"})
}

// GoogleLogin godoc
// @Summary Sign in with a Google credential
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google credential"
// @Success 200 {object} LoginResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /login/google [post]
func (h *AccountHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.GoogleLogin(c.Request().Context(), session.FromContext(c), req.Token)
	if err != nil {
		// Backend wording is not shown for Google failures.
		return echo.NewHTTPError(errors.MapErrorToHTTP(err, "").StatusCode, errors.ErrorResponse{
			Error: "Google login failed. Please try again.",
			Code:  "GOOGLE_LOGIN_FAILED",
		})
	}
	return c.JSON(http.StatusOK, LoginResponse{UserID: user.ID, Name: user.Name, Redirect: "/"})
}

// Logout godoc
// @Summary Sign out, clearing customer and admin state
// @Tags accounts
// @Produce json
// @Success 200 {object} RedirectResponse
// @Router /logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.accounts.Logout(c.Request().Context(), session.FromContext(c)); err != nil {
		return h.timing.fail(err, "Logout failed")
	}
	return c.JSON(http.StatusOK, RedirectResponse{
		Message:  "Logged Out Successfully",
		Redirect: "/",
	})
}

// Profile godoc
// @Summary Signed-in user's profile
// @Tags accounts
// @Produce json
// @Success 200 {object} ProfileView
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	sess := session.FromContext(c)
	user, err := h.accounts.Profile(c.Request().Context(), sess)
	if err != nil {
		return h.timing.fail(err, "Failed to fetch profile.")
	}
	return c.JSON(http.StatusOK, ProfileView{Viewer: viewerOf(sess), User: *user})
}
