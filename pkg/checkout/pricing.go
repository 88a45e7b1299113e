package checkout

import (
	"github.com/shopspring/decimal"
)

// ShippingPolicy charges a flat fee unless the subtotal is strictly above the threshold.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	Fee           decimal.Decimal
}

// Quote is the price breakdown shown next to the checkout form.
type Quote struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	FreeShipping          bool            `json:"free_shipping"`
	FreeShippingRemaining decimal.Decimal `json:"free_shipping_remaining"`
}

func (p ShippingPolicy) Quote(subtotal decimal.Decimal) Quote {
	q := Quote{Subtotal: subtotal}
	if subtotal.GreaterThan(p.FreeThreshold) {
		q.FreeShipping = true
		q.Shipping = decimal.Zero
		q.FreeShippingRemaining = decimal.Zero
	} else {
		q.Shipping = p.Fee
		// One unit above the threshold unlocks free shipping.
		q.FreeShippingRemaining = p.FreeThreshold.Sub(subtotal).Add(decimal.NewFromInt(1))
	}
	q.Total = subtotal.Add(q.Shipping)
	return q
}
