package product

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
)

// LowStockThreshold is the stock level under which a product shows a "few left" label.
const LowStockThreshold = 10

// Product is an immutable catalog entry. JSON names follow the storefront's catalog feed.
type Product struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Brand         string           `json:"brand" validate:"required"`
	Category      string           `json:"category" validate:"required"`
	Function      []string         `json:"function" validate:"dive,required"`
	SkinType      []string         `json:"skinType" validate:"dive,required"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	Ingredients   []string         `json:"ingredients" validate:"dive,required"`
	Usage         string           `json:"usage"`
	Benefits      []string         `json:"benefits"`
	Stock         int              `json:"stock" validate:"gte=0"`
	IsNew         bool             `json:"isNew,omitempty"`
	IsFeatured    bool             `json:"isFeatured,omitempty"`
	IsBestSeller  bool             `json:"isBestSeller,omitempty"`
}

// HasFunction reports whether the product is tagged with the given function.
func (p Product) HasFunction(function string) bool {
	return slices.Contains(p.Function, function)
}

// HasSkinType reports whether the product is tagged with the given skin type.
func (p Product) HasSkinType(skinType string) bool {
	return slices.Contains(p.SkinType, skinType)
}

// DiscountPercent returns the rounded percentage off the original price, or 0 when the
// product is not discounted.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

// StockStatus derives the availability label shown next to the price.
func (p Product) StockStatus() enums.StockStatus {
	switch {
	case p.Stock <= 0:
		return enums.StockStatusOutOfStock
	case p.Stock < LowStockThreshold:
		return enums.StockStatusLowStock
	default:
		return enums.StockStatusInStock
	}
}
