package service

import (
	"github.com/shopspring/decimal"

	"foodcart/internal/model"
)

// Totals is the order summary shown on the cart and checkout views.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals derives the summary from the cart lines. The total shown is the
// total sent to the backend.
func ComputeTotals(cart *model.Cart, deliveryFee decimal.Decimal) Totals {
	subtotal := cart.Subtotal()
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Add(deliveryFee),
	}
}
