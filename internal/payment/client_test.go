package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/storefront/internal/core/domain"
)

func TestNewClientRequiresPublishableKey(t *testing.T) {
	_, err := NewClient("http://backend/session", "https://pay.example.com", "  ")

	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "init_failed", perr.Code)
}

func TestCreateSessionPostsOrderPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer pk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "cs_test_42"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "https://pay.example.com", "pk_test_123")
	require.NoError(t, err)

	sessionID, err := client.CreateSession(context.Background(), SessionRequest{
		OrderID: "order-1",
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "p1", Price: decimal.RequireFromString("19.99")}, Quantity: 2},
		},
		ShippingAddress: domain.ShippingAddress{Country: "Canada"},
		ShippingCost:    decimal.NewFromInt(15),
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", sessionID)
	assert.Equal(t, "order-1", got["orderId"])
	assert.Equal(t, "15", got["shippingCost"])
	assert.NotNil(t, got["items"])
	assert.NotNil(t, got["shippingAddress"])
}

func TestCreateSessionRejectionIsStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "https://pay.example.com", "pk_test_123")
	require.NoError(t, err)

	_, err = client.CreateSession(context.Background(), SessionRequest{OrderID: "order-1"})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "session_rejected", perr.Code)
}

func TestCreateSessionWithoutIDIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "https://pay.example.com", "pk_test_123")
	require.NoError(t, err)

	_, err = client.CreateSession(context.Background(), SessionRequest{OrderID: "order-1"})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "malformed_session", perr.Code)
}

func TestRedirectURL(t *testing.T) {
	client, err := NewClient("http://backend", "https://pay.example.com/", "pk_test_123")
	require.NoError(t, err)

	url, err := client.RedirectURL(context.Background(), "cs_test_42")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/pay/cs_test_42", url)
}

func TestRedirectURLEmptySessionFails(t *testing.T) {
	client, err := NewClient("http://backend", "https://pay.example.com", "pk_test_123")
	require.NoError(t, err)

	_, err = client.RedirectURL(context.Background(), " ")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "invalid_session", perr.Code)
}
