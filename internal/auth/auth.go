// Package auth defines the authentication collaborator port: "who is signed
// in right now", sign-out, and session-change notifications the app
// subscribes to for its lifetime.
package auth

import (
	"context"

	"github.com/shophub/storefront/internal/core/domain"
)

// SessionProvider is the port to the external authentication system.
type SessionProvider interface {
	// Current returns the signed-in user for the session carried by ctx,
	// or (nil, nil) when nobody is signed in.
	Current(ctx context.Context) (*domain.User, error)

	// SignOut terminates the session carried by ctx.
	SignOut(ctx context.Context) error

	// Subscribe registers fn to be called on every session change (sign-in
	// delivers the user, sign-out delivers nil). The returned function
	// cancels the subscription.
	Subscribe(fn func(*domain.User)) (unsubscribe func())
}

type ctxKey string

const tokenKey ctxKey = "access_token"

// ContextWithToken attaches a bearer access token to ctx. The HTTP layer
// lifts the Authorization header into the context with this.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token attached to ctx, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
