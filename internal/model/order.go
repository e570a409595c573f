package model

import "github.com/shopspring/decimal"

// Payment methods offered at checkout.
const (
	PaymentMethodGateway = "razorpay"
	PaymentMethodCOD     = "cod"
	PaymentMethodCard    = "card"
)

// OrderLine is one menu item and quantity of an order.
type OrderLine struct {
	MenuItem string `json:"menuItem"`
	Quantity int    `json:"quantity"`
}

// PaymentDetails carries card fields as opaque text.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVV    string `json:"cardCvv"`
	NameOnCard string `json:"nameOnCard"`
}

// Order is an order as returned by the backend.
type Order struct {
	ID              string          `json:"_id"`
	User            UserRef         `json:"user"`
	Restaurant      RestaurantRef   `json:"restaurant"`
	Items           []OrderLine     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DeliveryAddress string          `json:"deliveryAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status,omitempty"`
}

// LinesFromCart derives order lines 1:1 from the cart lines.
func LinesFromCart(c *Cart) []OrderLine {
	if c == nil {
		return nil
	}
	lines := make([]OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, OrderLine{MenuItem: item.MenuItem.ID, Quantity: item.Quantity})
	}
	return lines
}

// GatewayOrder is the payment gateway order created before opening the widget.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// GatewayCallback is what the payment widget hands back on success.
type GatewayCallback struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
