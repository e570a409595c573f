package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodcart/internal/service"
	"foodcart/internal/session"
)

// AdminHandler handles the admin login and CRUD panel.
type AdminHandler struct {
	admin  service.AdminService
	timing Timing
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, timing Timing) *AdminHandler {
	return &AdminHandler{admin: admin, timing: timing}
}

// AdminLoginRequest represents an admin login request.
type AdminLoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AdminLoginView is the admin login page state.
type AdminLoginView struct {
	SignedIn bool   `json:"signedIn"`
	Username string `json:"username,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// DashboardView is the admin panel.
type DashboardView struct {
	Username             string           `json:"username"`
	Restaurants          []RestaurantCard `json:"restaurants"`
	SelectedRestaurantID string           `json:"selectedRestaurantId,omitempty"`
	MenuItems            []MenuItemCard   `json:"menuItems"`
	Flash                *Flash           `json:"flash,omitempty"`
}

// RequireAdmin redirects to the admin login before any admin page work when
// the session holds no admin token.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !session.FromContext(c).IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		return next(c)
	}
}

// LoginPage godoc
// @Summary Admin login page; offers the dashboard when already signed in
// @Tags admin
// @Produce json
// @Success 200 {object} AdminLoginView
// @Router /admin/login [get]
func (h *AdminHandler) LoginPage(c echo.Context) error {
	sess := session.FromContext(c)
	if sess.IsAdmin() {
		return c.JSON(http.StatusOK, AdminLoginView{SignedIn: true, Username: sess.AdminUsername(), Redirect: "/admin/dashboard"})
	}
	return c.JSON(http.StatusOK, AdminLoginView{})
}

// Login godoc
// @Summary Admin sign in
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} AdminLoginView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req AdminLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, err := h.admin.Login(c.Request().Context(), session.FromContext(c), req.Username, req.Password)
	if err != nil {
		return h.timing.fail(err, "Login failed. Please check your credentials.")
	}
	return c.JSON(http.StatusOK, AdminLoginView{SignedIn: true, Username: admin.Username, Redirect: "/admin/dashboard"})
}

// Logout godoc
// @Summary Admin sign out
// @Tags admin
// @Produce json
// @Success 200 {object} RedirectResponse
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	if err := h.admin.Logout(c.Request().Context(), session.FromContext(c)); err != nil {
		return h.timing.fail(err, "Logout failed")
	}
	return c.JSON(http.StatusOK, RedirectResponse{Redirect: "/admin/login"})
}

// Dashboard godoc
// @Summary Admin panel with restaurants and the selected restaurant's menu
// @Tags admin
// @Produce json
// @Param restaurantId query string false "Selected restaurant"
// @Success 200 {object} DashboardView
// @Success 303 "Redirect to /admin/login"
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.admin.Dashboard(c.Request().Context(), session.FromContext(c), c.QueryParam("restaurantId"))
	if err != nil {
		return h.timing.fail(err, "Failed to fetch restaurants")
	}
	return c.JSON(http.StatusOK, dashboardView(d, nil))
}

// RestaurantMenu godoc
// @Summary Admin panel with one restaurant selected
// @Tags admin
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} DashboardView
// @Router /admin/restaurants/{id}/menuitems [get]
func (h *AdminHandler) RestaurantMenu(c echo.Context) error {
	d, err := h.admin.Dashboard(c.Request().Context(), session.FromContext(c), c.Param("id"))
	if err != nil {
		return h.timing.fail(err, "Failed to fetch menu items")
	}
	return c.JSON(http.StatusOK, dashboardView(d, nil))
}

// CreateRestaurant godoc
// @Summary Create a restaurant
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.RestaurantForm true "Restaurant"
// @Success 201 {object} DashboardView
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/restaurants [post]
func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	var req service.RestaurantForm
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.admin.CreateRestaurant(c.Request().Context(), session.FromContext(c), req)
	if err != nil {
		return h.timing.fail(err, "Failed to save restaurant")
	}
	return c.JSON(http.StatusCreated, dashboardView(d, h.timing.success("Restaurant created successfully")))
}

// UpdateRestaurant godoc
// @Summary Update a restaurant
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body service.RestaurantForm true "Restaurant"
// @Success 200 {object} DashboardView
// @Router /admin/restaurants/{id} [put]
func (h *AdminHandler) UpdateRestaurant(c echo.Context) error {
	var req service.RestaurantForm
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.admin.UpdateRestaurant(c.Request().Context(), session.FromContext(c), c.Param("id"), req)
	if err != nil {
		return h.timing.fail(err, "Failed to save restaurant")
	}
	return c.JSON(http.StatusOK, dashboardView(d, h.timing.success("Restaurant updated successfully")))
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Tags admin
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} DashboardView
// @Router /admin/restaurants/{id} [delete]
func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	d, err := h.admin.DeleteRestaurant(c.Request().Context(), session.FromContext(c), c.Param("id"))
	if err != nil {
		return h.timing.fail(err, "Failed to delete restaurant")
	}
	return c.JSON(http.StatusOK, dashboardView(d, h.timing.success("Restaurant deleted successfully")))
}

// CreateMenuItem godoc
// @Summary Add a menu item to a restaurant
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body service.MenuItemForm true "Menu item"
// @Success 201 {object} DashboardView
// @Router /admin/restaurants/{id}/menuitems [post]
func (h *AdminHandler) CreateMenuItem(c echo.Context) error {
	var req service.MenuItemForm
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.admin.CreateMenuItem(c.Request().Context(), session.FromContext(c), c.Param("id"), req)
	if err != nil {
		return h.timing.fail(err, "Failed to save menu item")
	}
	return c.JSON(http.StatusCreated, dashboardView(d, h.timing.success("Menu item created successfully")))
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param restaurantId query string false "Selected restaurant"
// @Param request body service.MenuItemForm true "Menu item"
// @Success 200 {object} DashboardView
// @Router /admin/menuitems/{id} [put]
func (h *AdminHandler) UpdateMenuItem(c echo.Context) error {
	var req service.MenuItemForm
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.admin.UpdateMenuItem(c.Request().Context(), session.FromContext(c), c.QueryParam("restaurantId"), c.Param("id"), req)
	if err != nil {
		return h.timing.fail(err, "Failed to save menu item")
	}
	return c.JSON(http.StatusOK, dashboardView(d, h.timing.success("Menu item updated successfully")))
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags admin
// @Produce json
// @Param id path string true "Menu item ID"
// @Param restaurantId query string false "Selected restaurant"
// @Success 200 {object} DashboardView
// @Router /admin/menuitems/{id} [delete]
func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	d, err := h.admin.DeleteMenuItem(c.Request().Context(), session.FromContext(c), c.QueryParam("restaurantId"), c.Param("id"))
	if err != nil {
		return h.timing.fail(err, "Failed to delete menu item")
	}
	return c.JSON(http.StatusOK, dashboardView(d, h.timing.success("Menu item deleted successfully")))
}

func dashboardView(d *service.Dashboard, flash *Flash) DashboardView {
	items := make([]MenuItemCard, 0, len(d.Menu))
	for _, m := range d.Menu {
		items = append(items, menuItemCard(m))
	}
	return DashboardView{
		Username:             d.Username,
		Restaurants:          restaurantCards(d.Restaurants),
		SelectedRestaurantID: d.SelectedRestaurantID,
		MenuItems:            items,
		Flash:                flash,
	}
}

