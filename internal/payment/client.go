package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var _ Gateway = (*Client)(nil)

// Client implements Gateway against the storefront backend's checkout
// endpoint and the processor's hosted checkout.
type Client struct {
	endpoint       string // POST target that creates payment sessions
	checkoutBase   string // hosted checkout page base URL
	publishableKey string
	http           *http.Client
}

// NewClient builds the gateway handle. An empty publishable key fails here,
// before any checkout is attempted.
func NewClient(endpoint, checkoutBase, publishableKey string) (*Client, error) {
	if strings.TrimSpace(publishableKey) == "" {
		return nil, &Error{Code: "init_failed", Message: "publishable key is not configured"}
	}
	return &Client{
		endpoint:       endpoint,
		checkoutBase:   strings.TrimRight(checkoutBase, "/"),
		publishableKey: publishableKey,
		http:           &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (c *Client) CreateSession(ctx context.Context, sreq SessionRequest) (string, error) {
	body, err := json.Marshal(sreq)
	if err != nil {
		return "", fmt.Errorf("payment: encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("payment: build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.publishableKey)

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment: create session for order %s: %w", sreq.OrderID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", &Error{
			Code:    "session_rejected",
			Message: fmt.Sprintf("checkout endpoint returned %s", res.Status),
		}
	}

	var session struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("payment: decode session response: %w", err)
	}
	if session.ID == "" {
		return "", &Error{Code: "malformed_session", Message: "session response carried no id"}
	}
	return session.ID, nil
}

func (c *Client) RedirectURL(ctx context.Context, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", &Error{Code: "invalid_session", Message: "empty session id"}
	}
	return c.checkoutBase + "/pay/" + sessionID, nil
}
