package client

import (
    "context"
    "net/http"
)

// Roles returned by the API and stored in the session.
const (
    RoleBuyer  = "buyer"
    RoleSeller = "seller"
)

// Preferences is a buyer's saved search profile. Nil fields mean "any".
type Preferences struct {
    PreferredBrand        *string  `json:"preferred_brand,omitempty"`
    PreferredModel        *string  `json:"preferred_model,omitempty"`
    MinYear               *int     `json:"min_year,omitempty"`
    MaxYear               *int     `json:"max_year,omitempty"`
    MinPower              *int     `json:"min_power,omitempty"`
    MaxPower              *int     `json:"max_power,omitempty"`
    PreferredTransmission *string  `json:"preferred_transmission,omitempty"`
    PreferredCondition    *string  `json:"preferred_condition,omitempty"`
    MaxPrice              *float64 `json:"max_price,omitempty"`
}

// Registration carries the fields shared by both register endpoints.
// Preferences apply to buyers only and are ignored for sellers.
type Registration struct {
    Email       string       `json:"email"`
    Password    string       `json:"password"`
    FullName    string       `json:"full_name"`
    ContactInfo string       `json:"contact_info"`
    Preferences *Preferences `json:"preferences,omitempty"`
}

// Account is the registered or authenticated user's profile.
type Account struct {
    ID          uint64       `json:"id"`
    Email       string       `json:"email"`
    Role        string       `json:"role"`
    FullName    string       `json:"full_name"`
    ContactInfo string       `json:"contact_info"`
    Preferences *Preferences `json:"preferences,omitempty"`
}

type loginResponse struct {
    AccessToken string `json:"access_token"`
    TokenType   string `json:"token_type"`
    Role        string `json:"role"`
}

// RegisterBuyer creates a buyer account. The new user still has to log
// in; registration does not issue a token.
func (c *Client) RegisterBuyer(ctx context.Context, reg Registration) (Account, error) {
    var acc Account
    err := c.do(ctx, http.MethodPost, "/v1/auth/register/buyer", reg, &acc, false)
    return acc, err
}

// RegisterSeller creates a seller account.
func (c *Client) RegisterSeller(ctx context.Context, reg Registration) (Account, error) {
    reg.Preferences = nil
    var acc Account
    err := c.do(ctx, http.MethodPost, "/v1/auth/register/seller", reg, &acc, false)
    return acc, err
}

// Login authenticates and persists the token and role in the session
// store as one operation. The returned role tells the caller which
// cabinet to route to.
func (c *Client) Login(ctx context.Context, email, password string) (role string, err error) {
    var resp loginResponse
    body := map[string]string{"email": email, "password": password}
    if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &resp, false); err != nil {
        return "", err
    }
    if err := c.session.Set(resp.AccessToken, resp.Role); err != nil {
        return "", err
    }
    return resp.Role, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (Account, error) {
    var acc Account
    err := c.do(ctx, http.MethodGet, "/v1/me", nil, &acc, true)
    return acc, err
}

// ProfileUpdate holds the mutable profile fields. Nil fields keep their
// current value.
type ProfileUpdate struct {
    FullName    *string      `json:"full_name,omitempty"`
    ContactInfo *string      `json:"contact_info,omitempty"`
    Preferences *Preferences `json:"preferences,omitempty"`
}

// UpdateMe applies a profile update and returns the refreshed profile.
func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (Account, error) {
    var acc Account
    err := c.do(ctx, http.MethodPut, "/v1/me", upd, &acc, true)
    return acc, err
}

// DeleteMe removes the account and clears the local session.
func (c *Client) DeleteMe(ctx context.Context) error {
    if err := c.do(ctx, http.MethodDelete, "/v1/me", nil, nil, true); err != nil {
        return err
    }
    return c.session.Clear()
}
