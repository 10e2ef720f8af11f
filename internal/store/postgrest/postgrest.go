// Package postgrest implements store.Store against a Supabase-style PostgREST
// endpoint. Filters map onto the PostgREST query dialect:
//
//	Eq("id", v)        → ?id=eq.v
//	ILike("name", v)   → ?name=ilike.*v*
//	Order("c", true)   → ?order=c.desc
//	Limit(10)          → ?limit=10
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shophub/storefront/internal/auth"
	"github.com/shophub/storefront/internal/store"
)

var _ store.Store = (*Client)(nil)

// Client talks to a PostgREST endpoint. The anon key is sent as the apikey
// header on every request; when the context carries a user access token it is
// forwarded as the bearer so row-level security applies to the signed-in user.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// New builds a client for the given project URL (e.g. https://xyz.supabase.co)
// and anon key.
func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Select(ctx context.Context, q store.Query, dest any) error {
	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(q.Table) + "?" + encodeQuery(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("postgrest: build request for %q: %w", q.Table, err)
	}
	c.setHeaders(ctx, req)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: select from %q: %w", q.Table, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("postgrest: select from %q: %s", q.Table, readError(res))
	}
	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("postgrest: decode %q result set: %w", q.Table, err)
	}
	return nil
}

func (c *Client) Insert(ctx context.Context, table string, record, dest any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("postgrest: encode record for %q: %w", table, err)
	}

	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("postgrest: build insert for %q: %w", table, err)
	}
	c.setHeaders(ctx, req)
	req.Header.Set("Content-Type", "application/json")
	// Ask PostgREST to echo the stored row back so server-assigned columns
	// (id, created_at) reach the caller.
	req.Header.Set("Prefer", "return=representation")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: insert into %q: %w", table, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return fmt.Errorf("postgrest: insert into %q: %s", table, readError(res))
	}
	if dest == nil {
		return nil
	}

	// PostgREST always returns an array, even for a single-row insert.
	var rows []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return fmt.Errorf("postgrest: decode %q insert response: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("postgrest: insert into %q: empty representation", table)
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("postgrest: decode inserted %q record: %w", table, err)
	}
	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	token := auth.TokenFromContext(ctx)
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func encodeQuery(q store.Query) string {
	params := url.Values{}
	for _, f := range q.Filters {
		switch f.Op {
		case store.OpILike:
			params.Set(f.Column, "ilike.*"+f.Value+"*")
		default:
			params.Set(f.Column, string(f.Op)+"."+f.Value)
		}
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Max > 0 {
		params.Set("limit", strconv.Itoa(q.Max))
	}
	return params.Encode()
}

func readError(res *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return res.Status
	}
	return res.Status + ": " + msg
}
