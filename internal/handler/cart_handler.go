package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodcart/internal/model"
	"foodcart/internal/service"
	"foodcart/internal/session"
)

// CartHandler serves the cart view and drives checkout.
type CartHandler struct {
	carts    service.CartService
	checkout service.CheckoutService
	timing   Timing
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, checkout service.CheckoutService, timing Timing) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout, timing: timing}
}

// CartLineView is one cart line.
type CartLineView struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
}

// TotalsView is the order summary.
type TotalsView struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Total       string `json:"total"`
}

// CartView is the cart page. An empty cart carries the browse prompt instead
// of an order summary.
type CartView struct {
	Viewer         Viewer         `json:"viewer"`
	Items          []CartLineView `json:"items"`
	ItemCount      int            `json:"itemCount"`
	Empty          bool           `json:"empty"`
	Prompt         string         `json:"prompt,omitempty"`
	BrowseURL      string         `json:"browseUrl,omitempty"`
	Totals         *TotalsView    `json:"totals,omitempty"`
	CheckoutState  string         `json:"checkoutState"`
	PaymentMethods []string       `json:"paymentMethods,omitempty"`
}

const (
	emptyCartPrompt = "Your cart is empty"
	browseURL       = "/restaurents"
)

// QuantityRequest sets a line quantity.
type QuantityRequest struct {
	Quantity int `json:"quantity" form:"quantity" validate:"required,gte=1"`
}

// CheckoutRequest is the submitted checkout form.
type CheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress" form:"deliveryAddress" validate:"max=500"`
	PaymentMethod   string `json:"paymentMethod" form:"paymentMethod"`
	CardNumber      string `json:"cardNumber" form:"cardNumber"`
	CardExpiry      string `json:"cardExpiry" form:"cardExpiry"`
	CardCVV         string `json:"cardCvv" form:"cardCvv"`
	NameOnCard      string `json:"nameOnCard" form:"nameOnCard"`
}

// CheckoutResponse reports the state machine after a checkout action.
type CheckoutResponse struct {
	State           string                `json:"state"`
	Flash           *Flash                `json:"flash,omitempty"`
	OrderID         string                `json:"orderId,omitempty"`
	Widget          *service.WidgetConfig `json:"widget,omitempty"`
	Totals          *TotalsView           `json:"totals,omitempty"`
	Redirect        string                `json:"redirect,omitempty"`
	RedirectAfterMs int64                 `json:"redirectAfterMs,omitempty"`
}

var paymentMethods = []string{model.PaymentMethodGateway, model.PaymentMethodCOD, model.PaymentMethodCard}

// View godoc
// @Summary Cart page
// @Tags cart
// @Produce json
// @Success 200 {object} CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) View(c echo.Context) error {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return h.timing.loginRequired("Please login to view cart")
	}
	cart, err := h.carts.FetchCart(c.Request().Context(), sess.UserID())
	if err != nil {
		return h.timing.fail(err, "Failed to load cart")
	}
	return c.JSON(http.StatusOK, h.cartView(sess, cart))
}

// SetQuantity godoc
// @Summary Set a cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param menuItemId path string true "Menu item ID"
// @Param request body QuantityRequest true "New quantity"
// @Success 200 {object} CartView
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/items/{menuItemId} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req QuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.mutate(c, func(sess *session.Session) (*model.Cart, error) {
		return h.carts.SetQuantity(c.Request().Context(), sess.UserID(), c.Param("menuItemId"), req.Quantity)
	})
}

// Increment godoc
// @Summary Add one unit to a cart line
// @Tags cart
// @Produce json
// @Param menuItemId path string true "Menu item ID"
// @Success 200 {object} CartView
// @Router /cart/items/{menuItemId}/increment [post]
func (h *CartHandler) Increment(c echo.Context) error {
	return h.mutate(c, func(sess *session.Session) (*model.Cart, error) {
		return h.carts.Increment(c.Request().Context(), sess.UserID(), c.Param("menuItemId"))
	})
}

// Decrement godoc
// @Summary Remove one unit from a cart line, never below one
// @Tags cart
// @Produce json
// @Param menuItemId path string true "Menu item ID"
// @Success 200 {object} CartView
// @Router /cart/items/{menuItemId}/decrement [post]
func (h *CartHandler) Decrement(c echo.Context) error {
	return h.mutate(c, func(sess *session.Session) (*model.Cart, error) {
		return h.carts.Decrement(c.Request().Context(), sess.UserID(), c.Param("menuItemId"))
	})
}

// Remove godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param menuItemId path string true "Menu item ID"
// @Success 200 {object} CartView
// @Router /cart/items/{menuItemId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	return h.mutate(c, func(sess *session.Session) (*model.Cart, error) {
		return h.carts.RemoveItem(c.Request().Context(), sess.UserID(), c.Param("menuItemId"))
	})
}

// ProceedToCheckout godoc
// @Summary Open the checkout form
// @Tags checkout
// @Produce json
// @Success 200 {object} CheckoutResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) ProceedToCheckout(c echo.Context) error {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return h.timing.loginRequired(service.MessageLoginToOrder)
	}
	out, err := h.checkout.Proceed(c.Request().Context(), sess)
	if err != nil {
		return h.timing.fail(err, service.MessageOrderError)
	}
	return c.JSON(http.StatusOK, h.checkoutResponse(out))
}

// CancelCheckout godoc
// @Summary Leave the checkout form or abandon the payment widget
// @Tags checkout
// @Produce json
// @Success 200 {object} CheckoutResponse
// @Router /cart/checkout [delete]
func (h *CartHandler) CancelCheckout(c echo.Context) error {
	out, err := h.checkout.Cancel(c.Request().Context(), session.FromContext(c))
	if err != nil {
		return h.timing.fail(err, service.MessageOrderError)
	}
	return c.JSON(http.StatusOK, h.checkoutResponse(out))
}

// SubmitCheckout godoc
// @Summary Place the order or open the payment widget
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Checkout form"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} CheckoutResponse
// @Router /cart/checkout/submit [post]
func (h *CartHandler) SubmitCheckout(c echo.Context) error {
	var req CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	out, err := h.checkout.Submit(c.Request().Context(), session.FromContext(c), service.CheckoutForm{
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		CardNumber:      req.CardNumber,
		CardExpiry:      req.CardExpiry,
		CardCVV:         req.CardCVV,
		NameOnCard:      req.NameOnCard,
	})
	if err != nil {
		return h.timing.fail(err, service.MessageOrderError)
	}
	return h.respondOutcome(c, out)
}

// CompletePayment godoc
// @Summary Confirm a gateway payment from the widget callback
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body model.GatewayCallback true "Widget callback"
// @Success 200 {object} CheckoutResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} CheckoutResponse
// @Router /cart/checkout/payment [post]
func (h *CartHandler) CompletePayment(c echo.Context) error {
	var cb model.GatewayCallback
	if err := bind(c, &cb); err != nil {
		return err
	}
	out, err := h.checkout.CompletePayment(c.Request().Context(), session.FromContext(c), cb)
	if err != nil {
		return h.timing.fail(err, service.MessagePaymentNotVerified)
	}
	return h.respondOutcome(c, out)
}

func (h *CartHandler) mutate(c echo.Context, fn func(sess *session.Session) (*model.Cart, error)) error {
	sess := session.FromContext(c)
	if !sess.SignedIn() {
		return h.timing.loginRequired("Please login to view cart")
	}
	cart, err := fn(sess)
	if err != nil {
		return h.timing.fail(err, "Failed to update cart")
	}
	return c.JSON(http.StatusOK, h.cartView(sess, cart))
}

func (h *CartHandler) respondOutcome(c echo.Context, out *service.Outcome) error {
	status := http.StatusOK
	if out.Failed() {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, h.checkoutResponse(out))
}

func (h *CartHandler) cartView(sess *session.Session, cart *model.Cart) CartView {
	items := []CartLineView{}
	if cart != nil {
		for _, item := range cart.Items {
			line := CartLineView{
				MenuItemID: item.MenuItem.ID,
				UnitPrice:  money(item.UnitPrice()),
				Quantity:   item.Quantity,
				LineTotal:  money(item.LineTotal()),
			}
			if mi := item.MenuItem.MenuItem; mi != nil {
				line.Name = mi.Name
				line.ImageURL = mi.Image()
			}
			items = append(items, line)
		}
	}
	view := CartView{
		Viewer:        viewerOf(sess),
		Items:         items,
		ItemCount:     cart.ItemCount(),
		CheckoutState: string(h.checkout.State(sess)),
	}
	if cart.IsEmpty() {
		view.Empty = true
		view.Prompt = emptyCartPrompt
		view.BrowseURL = browseURL
		return view
	}
	totals := totalsView(h.carts.Totals(cart))
	view.Totals = &totals
	view.PaymentMethods = paymentMethods
	return view
}

func (h *CartHandler) checkoutResponse(out *service.Outcome) CheckoutResponse {
	resp := CheckoutResponse{
		State:    string(out.State),
		Widget:   out.Widget,
		Redirect: out.Redirect,
	}
	if out.Message != "" {
		resp.Flash = &Flash{Message: out.Message, Type: out.MessageType}
	}
	if out.Order != nil {
		resp.OrderID = out.Order.ID
	}
	if out.Redirect != "" {
		resp.RedirectAfterMs = out.RedirectAfter.Milliseconds()
	}
	if !out.Totals.Total.IsZero() {
		t := totalsView(out.Totals)
		resp.Totals = &t
	}
	return resp
}

func totalsView(t service.Totals) TotalsView {
	return TotalsView{
		Subtotal:    money(t.Subtotal),
		DeliveryFee: money(t.DeliveryFee),
		Total:       money(t.Total),
	}
}
