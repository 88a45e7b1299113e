package cartdto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/internal/cart"
	"github.com/angelmondragon/glowshop-backend/pkg/enums"
)

// AddItemRequest adds a product; quantity defaults to one.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,min=1,max=99"`
}

// UpdateQuantityRequest replaces a line's quantity. Values below one are rejected here
// because the engine stores them unclamped.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=99"`
}

// CartLine is one cart row as the sidebar renders it.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     int             `json:"stock"`
}

// Cart is the response for every cart endpoint.
type Cart struct {
	SessionID  string          `json:"session_id"`
	Items      []CartLine      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	ItemCount  int             `json:"item_count"`
	Persistent bool            `json:"persistent"`
}

// AddItemResponse tells the client which confirmation toast to show.
type AddItemResponse struct {
	Outcome     enums.CartAddOutcome `json:"outcome"`
	Quantity    int                  `json:"quantity"`
	Message     string               `json:"message"`
	Description string               `json:"description"`
	Cart        Cart                 `json:"cart"`
}

func NewCart(view cart.View) Cart {
	lines := make([]CartLine, 0, len(view.Items))
	for _, item := range view.Items {
		lines = append(lines, CartLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Brand:     item.Product.Brand,
			Image:     item.Product.Image,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
			Stock:     item.Product.Stock,
		})
	}
	return Cart{
		SessionID:  view.SessionID,
		Items:      lines,
		Total:      view.Total,
		Count:      view.Count,
		ItemCount:  view.ItemCount,
		Persistent: view.Persistent,
	}
}

// NewAddItemResponse picks the toast title and description for the add outcome.
func NewAddItemResponse(res cart.AddResult, productName string, view cart.View) AddItemResponse {
	out := AddItemResponse{
		Outcome:  res.Outcome,
		Quantity: res.Quantity,
		Cart:     NewCart(view),
	}
	if res.Outcome == enums.CartAddOutcomeUpdated {
		out.Message = "Producto actualizado"
		out.Description = fmt.Sprintf("%s - Cantidad: %d", productName, res.Quantity)
	} else {
		out.Message = "¡Agregado al carrito!"
		out.Description = productName
	}
	return out
}
