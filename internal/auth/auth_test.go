package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/storefront/internal/core/domain"
)

func TestBroadcasterNotifiesEverySubscriber(t *testing.T) {
	var b Broadcaster

	var first, second []*domain.User
	b.Subscribe(func(u *domain.User) { first = append(first, u) })
	b.Subscribe(func(u *domain.User) { second = append(second, u) })

	user := &domain.User{ID: "u1"}
	b.Notify(user)
	b.Notify(nil)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, "u1", first[0].ID)
	assert.Nil(t, first[1])
}

func TestBroadcasterUnsubscribeStopsDelivery(t *testing.T) {
	var b Broadcaster

	var calls int
	cancel := b.Subscribe(func(*domain.User) { calls++ })

	b.Notify(nil)
	cancel()
	b.Notify(nil)

	assert.Equal(t, 1, calls)
}

func TestMemoryProviderResolvesTokenFromContext(t *testing.T) {
	p := NewMemoryProvider()
	p.SignIn("tok", domain.User{ID: "u1", Email: "ada@example.com"})

	user, err := p.Current(ContextWithToken(context.Background(), "tok"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	// No token means anonymous, not an error.
	user, err = p.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMemoryProviderSignOutNotifies(t *testing.T) {
	p := NewMemoryProvider()
	p.SignIn("tok", domain.User{ID: "u1"})

	var events []*domain.User
	p.Subscribe(func(u *domain.User) { events = append(events, u) })

	ctx := ContextWithToken(context.Background(), "tok")
	require.NoError(t, p.SignOut(ctx))

	user, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	require.Len(t, events, 1)
	assert.Nil(t, events[0])
}

func TestGoTrueCurrentFetchesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-jwt", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(domain.User{ID: "u1", Email: "ada@example.com"})
	}))
	defer srv.Close()

	p := NewGoTrueProvider(srv.URL, "anon-key")

	user, err := p.Current(ContextWithToken(context.Background(), "user-jwt"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestGoTrueExpiredTokenIsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewGoTrueProvider(srv.URL, "anon-key")

	user, err := p.Current(ContextWithToken(context.Background(), "stale-jwt"))
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGoTrueCurrentWithoutTokenSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewGoTrueProvider(srv.URL, "anon-key")

	user, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, called)
}

func TestGoTrueSignOutNotifiesSubscribers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := NewGoTrueProvider(srv.URL, "anon-key")

	var events []*domain.User
	p.Subscribe(func(u *domain.User) { events = append(events, u) })

	require.NoError(t, p.SignOut(ContextWithToken(context.Background(), "user-jwt")))
	require.Len(t, events, 1)
	assert.Nil(t, events[0])
}
