// Package httpx is the HTTP surface of the storefront: catalog browsing,
// per-session cart state, checkout and order tracking.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shophub/storefront/internal/auth"
	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/catalog"
	"github.com/shophub/storefront/internal/checkout"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/httpx/middlewares"
	"github.com/shophub/storefront/internal/orders"
)

// Handler carries the storefront's services.
type Handler struct {
	catalog  *catalog.Service
	carts    *cart.Manager
	checkout *checkout.Orchestrator
	orders   *orders.Service
	sessions auth.SessionProvider
	rates    cart.RateTable
}

// NewHandler wires the handler with its services.
func NewHandler(
	cat *catalog.Service,
	carts *cart.Manager,
	co *checkout.Orchestrator,
	ord *orders.Service,
	sessions auth.SessionProvider,
	rates cart.RateTable,
) *Handler {
	return &Handler{
		catalog:  cat,
		carts:    carts,
		checkout: co,
		orders:   ord,
		sessions: sessions,
		rates:    rates,
	}
}

// ListProducts serves the catalog; with ?q= it becomes the suggestion lookup
// (case-insensitive substring on name, capped at 10).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	var (
		products []domain.Product
		err      error
	)
	if q != "" {
		products, err = h.catalog.Search(r.Context(), q, 10)
	} else {
		products, err = h.catalog.List(r.Context())
	}
	if err != nil {
		h.fetchError(w, r, err)
		return
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = mapProduct(&products[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fetchError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(product))
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.catalog.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fetchError(w, r, err)
		return
	}

	out := make([]ReviewResponse, len(reviews))
	for i, rev := range reviews {
		out[i] = ReviewResponse{
			ID:        rev.ID,
			ProductID: rev.ProductID,
			UserID:    rev.UserID,
			Rating:    rev.Rating,
			Comment:   rev.Comment,
			CreatedAt: rev.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateReview stores a review for the signed-in user.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "auth_unavailable", err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "log in to submit a review")
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !domain.ValidRating(req.Rating) {
		writeError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	}

	stored, err := h.catalog.AddReview(r.Context(), domain.Review{
		ProductID: chi.URLParam(r, "id"),
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "review_rejected", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, ReviewResponse{
		ID:        stored.ID,
		ProductID: stored.ProductID,
		UserID:    stored.UserID,
		Rating:    stored.Rating,
		Comment:   stored.Comment,
		CreatedAt: stored.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// GetCart renders the cart priced for the destination in ?country= (missing
// or unknown country prices shipping at zero).
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")

	var items []domain.CartItem
	h.carts.With(middlewares.CartID(r.Context()), func(c *cart.Cart) {
		items = c.Items()
	})

	writeJSON(w, http.StatusOK, mapCart(items, h.rates, country))
}

// AddCartItem puts one unit of the requested product into the cart. The
// response echoes the refreshed cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		h.fetchError(w, r, err)
		return
	}

	var items []domain.CartItem
	h.carts.With(middlewares.CartID(r.Context()), func(c *cart.Cart) {
		c.Add(*product)
		items = c.Items()
	})

	writeJSON(w, http.StatusOK, mapCart(items, h.rates, ""))
}

// UpdateCartItem replaces a line item's quantity. Quantities below 1 and
// unknown ids leave the cart unchanged, mirroring Cart.UpdateQuantity.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var items []domain.CartItem
	h.carts.With(middlewares.CartID(r.Context()), func(c *cart.Cart) {
		c.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
		items = c.Items()
	})

	writeJSON(w, http.StatusOK, mapCart(items, h.rates, ""))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var items []domain.CartItem
	h.carts.With(middlewares.CartID(r.Context()), func(c *cart.Cart) {
		c.Remove(chi.URLParam(r, "id"))
		items = c.Items()
	})

	writeJSON(w, http.StatusOK, mapCart(items, h.rates, ""))
}

// Checkout runs the checkout state machine for this session's cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.sessions.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "auth_unavailable", err.Error())
		return
	}

	sessionID := middlewares.CartID(r.Context())
	addr := mapAddress(req.ShippingAddress)

	// The orchestrator takes its in-flight gate before touching the cart, so
	// a double-submitted checkout gets a 409 instead of queueing here.
	result, err := h.checkout.Checkout(r.Context(), sessionID, user, addr)
	if err != nil {
		h.checkoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{
		OrderID:     result.Order.ID,
		RedirectURL: result.RedirectURL,
	})
}

// GetOrder serves an order with its status affordances for tracking.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "fetch_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order))
}

// SignOut terminates the current session.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "signout_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkoutError maps the checkout taxonomy onto HTTP statuses. Every branch
// leaves the shopper on an interactive page; nothing here is fatal.
func (h *Handler) checkoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", "log in to checkout")
	case errors.Is(err, checkout.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "invalid_address", "fill in all shipping details")
	case errors.Is(err, checkout.ErrInProgress):
		writeError(w, http.StatusConflict, "checkout_in_progress", "a checkout is already running")
	case errors.Is(err, checkout.ErrOrderPersist):
		writeError(w, http.StatusBadGateway, "order_persist_failed", "checkout failed, please try again")
	case errors.Is(err, checkout.ErrPaymentInit):
		writeError(w, http.StatusBadGateway, "payment_init_failed", "checkout failed, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "checkout_failed", err.Error())
	}
}

func (h *Handler) fetchError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "catalog fetch failed", "error", err)
	writeError(w, http.StatusBadGateway, "fetch_failed", "could not load data, please try again")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}
