package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line in a cart, identified by (ProductID, Size, Color).
// Name, Price and Image are carried for display; the order snapshot is
// taken from the live product at checkout.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// SameKey reports whether two items share the cart identity key.
func (i CartItem) SameKey(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// Cart is an ordered collection of line items scoped to a user. At most
// one item exists per (product_id, size, color) key.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem merges the incoming quantity into an existing line with the
// same key, or appends a new line.
func (c *Cart) AddItem(item CartItem) {
	for i, existing := range c.Items {
		if existing.SameKey(item.ProductID, item.Size, item.Color) {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the line matching the key. Removing an absent line
// is a no-op.
func (c *Cart) RemoveItem(productID, size, color string) {
	for i, item := range c.Items {
		if item.SameKey(productID, size, color) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the matching line in place,
// preserving list order. A quantity <= 0 behaves as RemoveItem.
func (c *Cart) SetQuantity(productID, size, color string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, size, color)
		return
	}
	for i, item := range c.Items {
		if item.SameKey(productID, size, color) {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal is the exact decimal sum of price x quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
