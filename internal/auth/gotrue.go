package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shophub/storefront/internal/core/domain"
)

var _ SessionProvider = (*GoTrueProvider)(nil)

// GoTrueProvider resolves sessions against a Supabase GoTrue endpoint. The
// bearer token travels in the request context; a request without a token is
// simply anonymous, not an error.
type GoTrueProvider struct {
	Broadcaster

	baseURL string
	anonKey string
	http    *http.Client
}

// NewGoTrueProvider builds a provider for the given project URL and anon key.
func NewGoTrueProvider(baseURL, anonKey string) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoTrueProvider) Current(ctx context.Context) (*domain.User, error) {
	token := TokenFromContext(ctx)
	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("auth: build user request: %w", err)
	}
	p.setHeaders(req, token)

	res, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: fetch current user: %w", err)
	}
	defer res.Body.Close()

	// An expired or revoked token means "nobody is signed in", not a
	// failure of the storefront.
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: fetch current user: %s", res.Status)
	}

	var user domain.User
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth: decode user: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (p *GoTrueProvider) SignOut(ctx context.Context) error {
	token := TokenFromContext(ctx)
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("auth: build logout request: %w", err)
	}
	p.setHeaders(req, token)

	res, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: sign out: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return fmt.Errorf("auth: sign out: %s", res.Status)
	}
	p.Notify(nil)
	return nil
}

func (p *GoTrueProvider) setHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
}
