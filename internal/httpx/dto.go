package httpx

// Monetary amounts render as two-decimal strings here and only here;
// everything below this layer keeps full decimal precision.

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CartItemResponse struct {
	ProductResponse
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Shipping string             `json:"shipping"`
	Total    string             `json:"total"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress AddressDTO `json:"shipping_address"`
}

type AddressDTO struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	RedirectURL string `json:"redirect_url"`
}

type OrderResponse struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	StatusIcon        string     `json:"status_icon"`
	StatusStyle       string     `json:"status_style"`
	TotalAmount       string     `json:"total_amount"`
	ShippingAddress   AddressDTO `json:"shipping_address"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery string     `json:"estimated_delivery,omitempty"`
	CreatedAt         string     `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
