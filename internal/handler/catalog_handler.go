package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodcart/internal/backend"
	"foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/service"
	"foodcart/internal/session"
)

// CatalogHandler serves the browsing views and their cart and review actions.
type CatalogHandler struct {
	catalog service.CatalogService
	reviews service.ReviewService
	timing  Timing
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.CatalogService, reviews service.ReviewService, timing Timing) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, reviews: reviews, timing: timing}
}

// RestaurantCard is a restaurant tile.
type RestaurantCard struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Cuisine  []string `json:"cuisine,omitempty"`
	ImageURL string   `json:"imageUrl"`
	Link     string   `json:"link"`
}

// MenuItemCard is a menu item tile.
type MenuItemCard struct {
	ID            string   `json:"id"`
	RestaurantID  string   `json:"restaurantId,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         string   `json:"price"`
	ImageURL      string   `json:"imageUrl"`
	Category      string   `json:"category,omitempty"`
	AverageRating float64  `json:"averageRating"`
	Stars         string   `json:"stars"`
	Ingredients   []string `json:"ingredients,omitempty"`
	Allergens     []string `json:"allergens,omitempty"`
	Link          string   `json:"link"`
}

// ReviewView is one review with its delete permission for the viewer.
type ReviewView struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Stars     string `json:"stars"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt,omitempty"`
	CanDelete bool   `json:"canDelete"`
}

// ReviewsView is a review list with its average.
type ReviewsView struct {
	Average string       `json:"average"`
	Stars   string       `json:"stars"`
	Items   []ReviewView `json:"items"`
}

// HomeView is the landing page.
type HomeView struct {
	Viewer      Viewer           `json:"viewer"`
	Brand       string           `json:"brand"`
	Restaurants []RestaurantCard `json:"restaurants"`
}

// RestaurantsView is the restaurant list.
type RestaurantsView struct {
	Viewer      Viewer           `json:"viewer"`
	Restaurants []RestaurantCard `json:"restaurants"`
}

// RestaurantDetailView is one restaurant with menu and reviews.
type RestaurantDetailView struct {
	Viewer     Viewer         `json:"viewer"`
	Restaurant RestaurantCard `json:"restaurant"`
	Menu       []MenuItemCard `json:"menu"`
	Reviews    ReviewsView    `json:"reviews"`
	CartCount  int            `json:"cartCount"`
}

// ProductsView is the explore page.
type ProductsView struct {
	Viewer     Viewer         `json:"viewer"`
	Items      []MenuItemCard `json:"items"`
	Categories []string       `json:"categories"`
	Category   string         `json:"category"`
	Sort       string         `json:"sort,omitempty"`
	Search     string         `json:"search,omitempty"`
}

// ExploreItemView is one menu item with its reviews.
type ExploreItemView struct {
	Viewer  Viewer       `json:"viewer"`
	Item    MenuItemCard `json:"item"`
	Reviews ReviewsView  `json:"reviews"`
}

// AddToCartRequest adds units of a menu item. The price is taken from the catalog.
type AddToCartRequest struct {
	MenuItemID string `json:"menuItemId" form:"menuItemId"`
	Quantity   int    `json:"quantity" form:"quantity" validate:"omitempty,gte=1"`
}

// AddToCartResponse reports the new cart size.
type AddToCartResponse struct {
	Flash     *Flash `json:"flash"`
	CartCount int    `json:"cartCount"`
	CartTotal string `json:"cartTotal"`
	Redirect  string `json:"redirect,omitempty"`
}

// ReviewRequest is the new review form.
type ReviewRequest struct {
	Rating  int    `json:"rating" form:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" form:"comment" validate:"max=1000"`
}

// ReviewsResponse is the refreshed review list after a change.
type ReviewsResponse struct {
	Flash   *Flash      `json:"flash"`
	Reviews ReviewsView `json:"reviews"`
}

const brandName = "ZOMA"

// Home godoc
// @Summary Landing page
// @Tags catalog
// @Produce json
// @Success 200 {object} HomeView
// @Router / [get]
func (h *CatalogHandler) Home(c echo.Context) error {
	sess := session.FromContext(c)
	view := HomeView{Viewer: viewerOf(sess), Brand: brandName, Restaurants: []RestaurantCard{}}

	restaurants, err := h.catalog.Restaurants(c.Request().Context())
	if err == nil {
		view.Restaurants = restaurantCards(restaurants)
	}
	return c.JSON(http.StatusOK, view)
}

// Restaurants godoc
// @Summary List restaurants
// @Tags catalog
// @Produce json
// @Success 200 {object} RestaurantsView
// @Failure 502 {object} errors.ErrorResponse
// @Router /restaurents [get]
func (h *CatalogHandler) Restaurants(c echo.Context) error {
	sess := session.FromContext(c)
	restaurants, err := h.catalog.Restaurants(c.Request().Context())
	if err != nil {
		return h.timing.fail(err, "Failed to load restaurants. Please try again later.")
	}
	return c.JSON(http.StatusOK, RestaurantsView{Viewer: viewerOf(sess), Restaurants: restaurantCards(restaurants)})
}

// RestaurantDetail godoc
// @Summary Restaurant page with menu and reviews
// @Tags catalog
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} RestaurantDetailView
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurant/{id} [get]
func (h *CatalogHandler) RestaurantDetail(c echo.Context) error {
	sess := session.FromContext(c)
	detail, err := h.catalog.RestaurantDetail(c.Request().Context(), c.Param("id"), sess.UserID())
	if err != nil {
		return h.timing.fail(err, "Restaurant not found")
	}

	menu := make([]MenuItemCard, 0, len(detail.Menu))
	for _, item := range detail.Menu {
		menu = append(menu, menuItemCard(item))
	}
	return c.JSON(http.StatusOK, RestaurantDetailView{
		Viewer:     viewerOf(sess),
		Restaurant: restaurantCard(*detail.Restaurant),
		Menu:       menu,
		Reviews:    reviewsView(detail.Reviews, sess.UserID()),
		CartCount:  detail.CartItemCount,
	})
}

// Products godoc
// @Summary Explore menu items
// @Tags catalog
// @Produce json
// @Param category query string false "Category, or all"
// @Param sort query string false "name, price-asc, price-desc or rating-desc"
// @Param search query string false "Free text search"
// @Success 200 {object} ProductsView
// @Failure 502 {object} errors.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	sess := session.FromContext(c)
	page, err := h.catalog.Products(c.Request().Context(), backend.ExploreQuery{
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return h.timing.fail(err, "Failed to load menu items. Please try again later.")
	}

	items := make([]MenuItemCard, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, menuItemCard(item))
	}
	category := page.Query.Category
	if category == "" {
		category = "all"
	}
	categories := page.Categories
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, ProductsView{
		Viewer:     viewerOf(sess),
		Items:      items,
		Categories: categories,
		Category:   category,
		Sort:       page.Query.Sort,
		Search:     page.Query.Search,
	})
}

// ExploreItem godoc
// @Summary Menu item page
// @Tags catalog
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} ExploreItemView
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore-item/{id} [get]
func (h *CatalogHandler) ExploreItem(c echo.Context) error {
	sess := session.FromContext(c)
	detail, err := h.catalog.ExploreItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.timing.fail(err, "Failed to load item details")
	}
	return c.JSON(http.StatusOK, ExploreItemView{
		Viewer:  viewerOf(sess),
		Item:    menuItemCard(*detail.Item),
		Reviews: reviewsView(detail.Reviews, sess.UserID()),
	})
}

// AddToCartFromRestaurant godoc
// @Summary Add a menu item to the cart from the restaurant page
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body AddToCartRequest true "Item to add"
// @Success 200 {object} AddToCartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /restaurant/{id}/cart [post]
func (h *CatalogHandler) AddToCartFromRestaurant(c echo.Context) error {
	var req AddToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cart, err := h.addToCart(c, c.Param("id"), req)
	if err != nil {
		return err
	}
	total := cart.Subtotal()
	return c.JSON(http.StatusOK, AddToCartResponse{
		Flash:     h.timing.success(fmt.Sprintf("Item added to cart successfully! Cart total: $%s", money(total))),
		CartCount: cart.ItemCount(),
		CartTotal: money(total),
	})
}

// AddToCartFromItem godoc
// @Summary Add the viewed menu item to the cart and go to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body AddToCartRequest false "Quantity to add"
// @Success 200 {object} AddToCartResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /explore-item/{id}/cart [post]
func (h *CatalogHandler) AddToCartFromItem(c echo.Context) error {
	var req AddToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.MenuItemID = c.Param("id")
	cart, err := h.addToCart(c, "", req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AddToCartResponse{
		CartCount: cart.ItemCount(),
		CartTotal: money(cart.Subtotal()),
		Redirect:  "/cart",
	})
}

func (h *CatalogHandler) addToCart(c echo.Context, restaurantID string, req AddToCartRequest) (*model.Cart, error) {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return nil, h.timing.loginRequired("Please login to add items to cart")
	}
	if req.MenuItemID == "" {
		return nil, h.timing.fail(errors.NewValidationError("menuItemId", "menuItemId is required"), "")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.catalog.AddToCart(c.Request().Context(), sess.UserID(), restaurantID, req.MenuItemID, req.Quantity)
	if err != nil {
		return nil, h.timing.fail(err, "Failed to add item to cart")
	}
	return cart, nil
}

// CreateRestaurantReview godoc
// @Summary Review a restaurant
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} ReviewsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /restaurant/{id}/reviews [post]
func (h *CatalogHandler) CreateRestaurantReview(c echo.Context) error {
	return h.createReview(c, model.ReviewTargetRestaurant)
}

// CreateItemReview godoc
// @Summary Review a menu item
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} ReviewsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /explore-item/{id}/reviews [post]
func (h *CatalogHandler) CreateItemReview(c echo.Context) error {
	return h.createReview(c, model.ReviewTargetMenuItem)
}

// DeleteRestaurantReview godoc
// @Summary Delete own restaurant review
// @Tags reviews
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} ReviewsResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /restaurant/{id}/reviews/{reviewId} [delete]
func (h *CatalogHandler) DeleteRestaurantReview(c echo.Context) error {
	return h.deleteReview(c, model.ReviewTargetRestaurant)
}

// DeleteItemReview godoc
// @Summary Delete own menu item review
// @Tags reviews
// @Produce json
// @Param id path string true "Menu item ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} ReviewsResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /explore-item/{id}/reviews/{reviewId} [delete]
func (h *CatalogHandler) DeleteItemReview(c echo.Context) error {
	return h.deleteReview(c, model.ReviewTargetMenuItem)
}

func (h *CatalogHandler) createReview(c echo.Context, target model.ReviewTarget) error {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return h.timing.loginRequired("Please login to submit a review")
	}
	var req ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reviews, err := h.reviews.Create(c.Request().Context(), sess.UserID(), target, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return h.timing.fail(err, "Failed to submit review")
	}
	return c.JSON(http.StatusCreated, ReviewsResponse{
		Flash:   h.timing.success("Review submitted successfully!"),
		Reviews: reviewsView(reviews, sess.UserID()),
	})
}

func (h *CatalogHandler) deleteReview(c echo.Context, target model.ReviewTarget) error {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return h.timing.loginRequired("Please login to delete a review")
	}

	reviews, err := h.reviews.Delete(c.Request().Context(), sess.UserID(), target, c.Param("id"), c.Param("reviewId"))
	if err != nil {
		return h.timing.fail(err, "Failed to delete review")
	}
	return c.JSON(http.StatusOK, ReviewsResponse{
		Flash:   h.timing.success("Review deleted successfully!"),
		Reviews: reviewsView(reviews, sess.UserID()),
	})
}

func restaurantCard(r model.Restaurant) RestaurantCard {
	return RestaurantCard{
		ID:       r.ID,
		Name:     r.Name,
		Address:  r.Address,
		Cuisine:  r.Cuisine,
		ImageURL: r.Image(),
		Link:     "/restaurant/" + r.ID,
	}
}

func restaurantCards(rs []model.Restaurant) []RestaurantCard {
	out := make([]RestaurantCard, 0, len(rs))
	for _, r := range rs {
		out = append(out, restaurantCard(r))
	}
	return out
}

func menuItemCard(m model.MenuItem) MenuItemCard {
	return MenuItemCard{
		ID:            m.ID,
		RestaurantID:  m.Restaurant.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         money(m.Price),
		ImageURL:      m.Image(),
		Category:      m.Category,
		AverageRating: m.AverageRating,
		Stars:         service.RenderStars(m.AverageRating),
		Ingredients:   m.Ingredients,
		Allergens:     m.Allergens,
		Link:          "/explore-item/" + m.ID,
	}
}

func reviewsView(reviews []model.Review, viewerID string) ReviewsView {
	items := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		v := ReviewView{
			ID:        r.ID,
			Author:    r.User.Name(),
			Rating:    r.Rating,
			Stars:     service.RenderStars(float64(r.Rating)),
			Comment:   r.Comment,
			CanDelete: service.CanDelete(r, viewerID),
		}
		if v.Author == "" {
			v.Author = "Anonymous"
		}
		if !r.CreatedAt.IsZero() {
			v.CreatedAt = r.CreatedAt.Format("2006-01-02")
		}
		items = append(items, v)
	}
	return ReviewsView{
		Average: service.FormatAverage(reviews),
		Stars:   service.RenderStars(service.Average(reviews)),
		Items:   items,
	}
}
