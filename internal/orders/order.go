package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	"github.com/angelmondragon/glowshop-backend/pkg/types"
)

// Line is a product snapshot frozen at order time.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Order is a simulated purchase. Nothing is charged or shipped.
type Order struct {
	ID              uuid.UUID         `json:"id"`
	SessionID       string            `json:"session_id"`
	Email           string            `json:"email"`
	CustomerName    string            `json:"customer_name"`
	Lines           []Line            `json:"items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Shipping        decimal.Decimal   `json:"shipping"`
	Total           decimal.Decimal   `json:"total"`
	Status          enums.OrderStatus `json:"status"`
	CardLast4       string            `json:"card_last4"`
	ShippingAddress types.Address     `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Units is the total quantity across lines.
func (o Order) Units() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}
