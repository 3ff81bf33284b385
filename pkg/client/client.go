// Package client is the Go SDK for the dealership marketplace API. It
// wraps the REST endpoints with typed methods, carries the bearer token
// from a pluggable SessionStore, and normalizes every error body into a
// single APIError shape.
package client

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "net/http"
    "strings"
    "sync"
    "time"
)

// Client talks to one marketplace server. The zero value is not usable;
// construct with New.
type Client struct {
    baseURL  string
    http     *http.Client
    session  SessionStore
    pending  *inflight
    expireMu sync.Mutex

    // OnAuthExpired runs after the client observes a 401 on an
    // authenticated call and clears the session. UIs use it to route to
    // the login screen. Called at most once per expiry, from the
    // goroutine that hit the 401.
    OnAuthExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
    return func(c *Client) { c.http = h }
}

// WithSessionStore substitutes the session store. The default is an
// in-memory store that forgets the session on process exit.
func WithSessionStore(s SessionStore) Option {
    return func(c *Client) { c.session = s }
}

// New creates a client for the API at baseURL (e.g. "https://api.example.com").
func New(baseURL string, opts ...Option) *Client {
    c := &Client{
        baseURL: strings.TrimRight(baseURL, "/"),
        http:    &http.Client{Timeout: 30 * time.Second},
        session: NewMemorySessionStore(),
        pending: newInflight(),
    }
    for _, opt := range opts {
        opt(c)
    }
    return c
}

// Session returns the client's session store.
func (c *Client) Session() SessionStore { return c.session }

// SignedIn reports whether a token is present. It does not validate the
// token; an expired one surfaces as a 401 on the next call.
func (c *Client) SignedIn() bool { return c.session.Token() != "" }

// Logout clears the session locally. Tokens are stateless on the server
// side, so there is nothing to revoke remotely.
func (c *Client) Logout() error { return c.session.Clear() }

// do performs one API call. A non-nil in is sent as JSON; a non-nil out
// receives the decoded response body. When authed is true the bearer
// token is attached, and a 401 response clears the session and fires
// OnAuthExpired before the error is returned.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
    var body io.Reader
    if in != nil {
        raw, err := json.Marshal(in)
        if err != nil {
            return err
        }
        body = bytes.NewReader(raw)
    }

    req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
    if err != nil {
        return err
    }
    if in != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    req.Header.Set("Accept", "application/json")
    if authed {
        if tok := c.session.Token(); tok != "" {
            req.Header.Set("Authorization", "Bearer "+tok)
        }
    }

    resp, err := c.http.Do(req)
    if err != nil {
        return err
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(resp.Body)
    if err != nil {
        return err
    }

    if resp.StatusCode >= 400 {
        apiErr := normalizeError(resp.StatusCode, raw)
        if authed && resp.StatusCode == http.StatusUnauthorized {
            c.expireSession()
        }
        return apiErr
    }

    if out != nil && len(raw) > 0 {
        return json.Unmarshal(raw, out)
    }
    return nil
}

// expireSession clears the stored credentials and notifies the owner.
// Token and role are cleared together so no observer ever sees a role
// without a token. Only the call that finds a token still present clears
// and notifies, so overlapping 401s from one expiry produce a single
// notification.
func (c *Client) expireSession() {
    c.expireMu.Lock()
    defer c.expireMu.Unlock()
    if c.session.Token() == "" {
        return
    }
    _ = c.session.Clear()
    if c.OnAuthExpired != nil {
        c.OnAuthExpired()
    }
}
