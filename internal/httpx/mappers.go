package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/orders"
)

func mapProduct(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}
}

func mapCart(items []domain.CartItem, rates cart.RateTable, country string) CartResponse {
	quote := cart.PriceQuote(items, rates, country)

	out := make([]CartItemResponse, len(items))
	for i, it := range items {
		out[i] = CartItemResponse{
			ProductResponse: mapProduct(&it.Product),
			Quantity:        it.Quantity,
			LineTotal:       it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
		}
	}
	return CartResponse{
		Items:    out,
		Subtotal: quote.Subtotal.StringFixed(2),
		Shipping: quote.Shipping.StringFixed(2),
		Total:    quote.Total.StringFixed(2),
	}
}

func mapAddress(a AddressDTO) domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:      a.FullName,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		Phone:         a.Phone,
	}
}

func mapOrder(o *domain.Order) OrderResponse {
	affordance := orders.Present(o.Status)

	res := OrderResponse{
		ID:          o.ID,
		Status:      string(o.Status),
		StatusIcon:  affordance.Icon,
		StatusStyle: affordance.Style,
		TotalAmount: o.TotalAmount.StringFixed(2),
		ShippingAddress: AddressDTO{
			FullName:      o.ShippingAddress.FullName,
			StreetAddress: o.ShippingAddress.StreetAddress,
			City:          o.ShippingAddress.City,
			State:         o.ShippingAddress.State,
			PostalCode:    o.ShippingAddress.PostalCode,
			Country:       o.ShippingAddress.Country,
			Phone:         o.ShippingAddress.Phone,
		},
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.EstimatedDelivery != nil {
		res.EstimatedDelivery = o.EstimatedDelivery.UTC().Format(time.RFC3339)
	}
	return res
}
