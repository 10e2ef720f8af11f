package orders

import "github.com/shophub/storefront/internal/core/domain"

// Affordance is the (icon, style class) pair a status renders with.
type Affordance struct {
	Icon  string `json:"icon"`
	Style string `json:"style"`
}

// statusAffordances maps each known status to its display affordance.
var statusAffordances = map[domain.OrderStatus]Affordance{
	domain.StatusPending:    {Icon: "clock", Style: "bg-yellow-100 text-yellow-800"},
	domain.StatusProcessing: {Icon: "package", Style: "bg-blue-100 text-blue-800"},
	domain.StatusShipped:    {Icon: "truck", Style: "bg-purple-100 text-purple-800"},
	domain.StatusDelivered:  {Icon: "check-circle", Style: "bg-green-100 text-green-800"},
}

// defaultAffordance is the neutral fallback for any status this build does
// not recognise; an unknown status still renders.
var defaultAffordance = Affordance{Icon: "clock", Style: "bg-gray-100 text-gray-800"}

// Present maps an order status onto its display affordance. Pure, no state.
func Present(status domain.OrderStatus) Affordance {
	if a, ok := statusAffordances[status]; ok {
		return a
	}
	return defaultAffordance
}
