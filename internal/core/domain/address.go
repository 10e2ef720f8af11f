package domain

import "strings"

// ShippingAddress is the destination snapshot embedded into an order at
// checkout time. The country must match a shipping-rate table key to carry a
// non-zero rate; an unknown country ships free.
type ShippingAddress struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

// Complete reports whether every field is non-empty after trimming.
// Checkout refuses an address that is not complete.
func (a ShippingAddress) Complete() bool {
	for _, f := range []string{
		a.FullName,
		a.StreetAddress,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
		a.Phone,
	} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
