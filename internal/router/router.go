package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodcart/internal/auth"
	"foodcart/internal/handler"
	"foodcart/internal/logger"
	"foodcart/internal/session"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Account *handler.AccountHandler
	Admin   *handler.AdminHandler
	Order   *handler.OrderHandler
}

// Options configures the session layer.
type Options struct {
	Tokens        *auth.TokenService
	Sessions      session.Store
	SecureCookies bool
	Log           zerolog.Logger
}

// Register wires routes and middleware.
func Register(e *echo.Echo, opts Options, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(opts.Log))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every page runs inside a browser session. A missing or invalid cookie is
	// not an error: the session middleware issues a fresh one.
	app := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup: "cookie:" + auth.CookieName,
			ContextKey:  session.TokenContextKey,
			ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
				claims, err := opts.Tokens.ValidateToken(raw)
				if err != nil {
					return nil, err
				}
				return claims, nil
			},
			ContinueOnIgnoredError: true,
			ErrorHandler: func(echo.Context, error) error {
				return nil
			},
		}),
		session.Middleware(opts.Tokens, opts.Sessions, opts.SecureCookies, opts.Log),
	)

	// Catalog
	app.GET("/", h.Catalog.Home)
	app.GET("/restaurents", h.Catalog.Restaurants)
	app.GET("/restaurant/:id", h.Catalog.RestaurantDetail)
	app.POST("/restaurant/:id/cart", h.Catalog.AddToCartFromRestaurant)
	app.POST("/restaurant/:id/reviews", h.Catalog.CreateRestaurantReview)
	app.DELETE("/restaurant/:id/reviews/:reviewId", h.Catalog.DeleteRestaurantReview)
	app.GET("/products", h.Catalog.Products)
	app.GET("/explore-item/:id", h.Catalog.ExploreItem)
	app.POST("/explore-item/:id/cart", h.Catalog.AddToCartFromItem)
	app.POST("/explore-item/:id/reviews", h.Catalog.CreateItemReview)
	app.DELETE("/explore-item/:id/reviews/:reviewId", h.Catalog.DeleteItemReview)

	// Accounts
	app.GET("/profile", h.Account.Profile)
	app.POST("/register", h.Account.Register)
	app.POST("/login", h.Account.Login)
	app.POST("/login/google", h.Account.GoogleLogin)
	app.GET("/logout", h.Account.Logout)
	app.POST("/logout", h.Account.Logout)

	// Cart and checkout
	app.GET("/cart", h.Cart.View)
	app.PUT("/cart/items/:menuItemId", h.Cart.SetQuantity)
	app.POST("/cart/items/:menuItemId/increment", h.Cart.Increment)
	app.POST("/cart/items/:menuItemId/decrement", h.Cart.Decrement)
	app.DELETE("/cart/items/:menuItemId", h.Cart.Remove)
	app.POST("/cart/checkout", h.Cart.ProceedToCheckout)
	app.DELETE("/cart/checkout", h.Cart.CancelCheckout)
	app.POST("/cart/checkout/submit", h.Cart.SubmitCheckout)
	app.POST("/cart/checkout/payment", h.Cart.CompletePayment)
	app.GET("/orders", h.Order.Orders)

	// Admin
	app.GET("/admin/login", h.Admin.LoginPage)
	app.POST("/admin/login", h.Admin.Login)

	admin := app.Group("/admin", handler.RequireAdmin)
	admin.POST("/logout", h.Admin.Logout)
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.POST("/restaurants", h.Admin.CreateRestaurant)
	admin.PUT("/restaurants/:id", h.Admin.UpdateRestaurant)
	admin.DELETE("/restaurants/:id", h.Admin.DeleteRestaurant)
	admin.GET("/restaurants/:id/menuitems", h.Admin.RestaurantMenu)
	admin.POST("/restaurants/:id/menuitems", h.Admin.CreateMenuItem)
	admin.PUT("/menuitems/:id", h.Admin.UpdateMenuItem)
	admin.DELETE("/menuitems/:id", h.Admin.DeleteMenuItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
