package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodcart/internal/session"
)

// OrderHandler serves the order confirmation page.
type OrderHandler struct {
	timing Timing
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(timing Timing) *OrderHandler {
	return &OrderHandler{timing: timing}
}

// OrdersView is the confirmation page. Flash is present once after a
// successful checkout.
type OrdersView struct {
	Viewer  Viewer `json:"viewer"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Flash   *Flash `json:"flash,omitempty"`
}

// Orders godoc
// @Summary Order confirmation page
// @Tags orders
// @Produce json
// @Success 200 {object} OrdersView
// @Router /orders [get]
func (h *OrderHandler) Orders(c echo.Context) error {
	sess := session.FromContext(c)
	msg, err := sess.TakeOrderSuccessMessage(c.Request().Context())
	if err != nil {
		return h.timing.fail(err, "Failed to load orders")
	}

	view := OrdersView{
		Viewer:  viewerOf(sess),
		Title:   "Order Placed Successfully!",
		Message: "Thank you for your order. Your delicious food is being prepared and will be delivered soon.",
	}
	if msg != "" {
		view.Flash = h.timing.success(msg)
	}
	return c.JSON(http.StatusOK, view)
}
