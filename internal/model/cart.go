package model

import "github.com/shopspring/decimal"

// DefaultDeliveryFee is the flat fee added to every order unless configured otherwise.
var DefaultDeliveryFee = decimal.RequireFromString("2.99")

// CartItem is one line of a cart. Price is the unit price captured when the item was added.
type CartItem struct {
	MenuItem MenuItemRef     `json:"menuItem"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// UnitPrice returns the captured price, falling back to the menu item price.
func (ci CartItem) UnitPrice() decimal.Decimal {
	if !ci.Price.IsZero() || ci.MenuItem.MenuItem == nil {
		return ci.Price
	}
	return ci.MenuItem.MenuItem.Price
}

// LineTotal is unit price times quantity.
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// RestaurantID returns the owning restaurant of the line's menu item.
func (ci CartItem) RestaurantID() string {
	if ci.MenuItem.MenuItem == nil {
		return ""
	}
	return ci.MenuItem.MenuItem.Restaurant.ID
}

// Cart is the server-resident cart of one user.
type Cart struct {
	ID    string          `json:"_id"`
	User  UserRef         `json:"user"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	if c == nil {
		return sum
	}
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ItemCount is the total quantity over all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart is absent or has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Find returns the line for menuItemID.
func (c *Cart) Find(menuItemID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.Items {
		if item.MenuItem.ID == menuItemID {
			return item, true
		}
	}
	return CartItem{}, false
}
