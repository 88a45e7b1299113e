package cart

import (
	"github.com/shopspring/decimal"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	"github.com/angelmondragon/glowshop-backend/pkg/money"
)

// Item is one cart line. At rest Quantity is at least 1.
type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price times quantity for the line.
func (i Item) LineTotal() decimal.Decimal {
	return money.LineTotal(i.Product.Price, i.Quantity)
}

// AddResult reports what Add did so callers can pick their confirmation message.
type AddResult struct {
	Outcome  enums.CartAddOutcome `json:"outcome"`
	Quantity int                  `json:"quantity"`
}

// Cart holds at most one line per product id, in first-added order.
// A Cart is not safe for concurrent use; Session serialises access.
type Cart struct {
	items []Item
}

// New builds a cart from restored lines, merging repeated product ids.
func New(items []Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		if idx := c.indexOf(item.Product.ID); idx >= 0 {
			c.items[idx].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p or appends a new line with quantity 1.
// Stock is not checked.
func (c *Cart) Add(p product.Product) AddResult {
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity++
		return AddResult{Outcome: enums.CartAddOutcomeUpdated, Quantity: c.items[idx].Quantity}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
	return AddResult{Outcome: enums.CartAddOutcomeAdded, Quantity: 1}
}

// SetQuantity replaces the quantity of an existing line as given. Zero and negative
// values are stored unchanged; callers clamp. Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.items[idx].Quantity = quantity
	return true
}

// Remove drops the line for productID. Removing an absent id is a no-op.
func (c *Cart) Remove(productID string) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// ItemCount is the number of distinct products.
func (c *Cart) ItemCount() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
