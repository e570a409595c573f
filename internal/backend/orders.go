package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"foodcart/internal/model"
)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	UserID          string                `json:"userId"`
	Restaurant      string                `json:"restaurant"`
	Items           []model.OrderLine     `json:"items"`
	TotalAmount     float64               `json:"totalAmount"`
	DeliveryAddress string                `json:"deliveryAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	PaymentDetails  *model.PaymentDetails `json:"paymentDetails"`
}

// VerifyPaymentRequest is the body of POST /verify-payment.
type VerifyPaymentRequest struct {
	GatewayOrderID   string            `json:"razorpay_order_id"`
	GatewayPaymentID string            `json:"razorpay_payment_id"`
	GatewaySignature string            `json:"razorpay_signature"`
	UserID           string            `json:"userId"`
	RestaurantID     string            `json:"restaurantId"`
	Items            []model.OrderLine `json:"items"`
	TotalAmount      float64           `json:"totalAmount"`
	DeliveryAddress  string            `json:"deliveryAddress"`
}

// OrderResult is the acknowledgement of order creation or payment verification.
type OrderResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   *model.Order `json:"order,omitempty"`
}

type paymentOrderRequest struct {
	Amount  float64 `json:"amount"`
	Receipt string  `json:"receipt"`
}

// CreateOrder places a cash or card order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	var out OrderResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/orders", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePaymentOrder opens a gateway order for amount.
func (c *Client) CreatePaymentOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*model.GatewayOrder, error) {
	var out model.GatewayOrder
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/create-razorpay-order",
		body:   paymentOrderRequest{Amount: amount.InexactFloat64(), Receipt: receipt},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Receipt == "" {
		out.Receipt = receipt
	}
	return &out, nil
}

// VerifyPayment asks the backend to check the gateway signature and place the order.
func (c *Client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*OrderResult, error) {
	var out OrderResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/verify-payment", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
