// Package middlewares holds the request-context plumbing for the storefront:
// the cart-session cookie and the bearer token lift.
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/auth"
)

type ctxKey string

const cartIDKey ctxKey = "cart_id"

// cookieName identifies the shopper's cart session. The cart behind it is
// in-memory only; a new cookie means an empty cart.
const cookieName = "cart_session"

// WithCartSession guarantees every request carries a cart session id,
// minting a cookie on first contact.
func WithCartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), cartIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartID returns the request's cart session id.
func CartID(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey).(string)
	return id
}

// WithBearerToken lifts an Authorization bearer token into the context for
// the session provider and the record store to forward.
func WithBearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			r = r.WithContext(auth.ContextWithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
