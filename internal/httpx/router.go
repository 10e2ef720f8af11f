package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shophub/storefront/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.WithBearerToken)
	r.Use(middlewares.WithCartSession)

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Get("/products/{id}/reviews", handler.ListReviews)
	r.Post("/products/{id}/reviews", handler.CreateReview)

	r.Get("/cart", handler.GetCart)
	r.Post("/cart/items", handler.AddCartItem)
	r.Patch("/cart/items/{id}", handler.UpdateCartItem)
	r.Delete("/cart/items/{id}", handler.RemoveCartItem)

	r.Post("/checkout", handler.Checkout)
	r.Get("/orders/{id}", handler.GetOrder)

	r.Post("/auth/signout", handler.SignOut)

	return r
}
