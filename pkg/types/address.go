package types

import "strings"

// Address is the shipping destination captured during checkout.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Normalize trims every field and fills the country fallback when it is blank.
func (a Address) Normalize(defaultCountry string) Address {
	out := Address{
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
	if out.Country == "" {
		out.Country = strings.TrimSpace(defaultCountry)
	}
	return out
}
