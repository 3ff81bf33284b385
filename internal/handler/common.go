package handler

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"
)

// fieldError is one entry of a validation failure response. Validation
// errors are returned as {"detail": [fieldError, ...]} so that clients
// can attach messages to the offending form fields.
type fieldError struct {
    Field string `json:"field"`
    Msg   string `json:"msg"`
}

// getUserID extracts the user_id stored by the JWTAuth middleware and
// converts it to uint64. JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id (or named) path parameter as a positive integer.
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}
