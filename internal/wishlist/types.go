package wishlist

import (
	"time"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
)

// Entry is one liked product as stored for a session.
type Entry struct {
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// ItemDTO wraps the product included in a wishlist row.
type ItemDTO struct {
	Product   product.Product `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// PageDTO is the full wishlist view, newest first.
type PageDTO struct {
	Items []ItemDTO `json:"items"`
	Total int       `json:"total"`
}

// IDsDTO is a lightweight projection containing only product ids.
type IDsDTO struct {
	ProductIDs []string `json:"product_ids"`
}
