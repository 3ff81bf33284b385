package middleware

// identity.go holds helpers shared across middleware files. The rate
// limiter keys on the requesting user when one is authenticated, so it
// needs a best-effort user identifier that falls back to "guest" for
// anonymous traffic.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or
// "guest" when the request carries no valid token. JWTAuth stores the
// sub claim under "user_id"; numeric claims decode as float64.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "guest"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    case int64:
        return fmt.Sprintf("%d", t)
    }
    return "guest"
}
