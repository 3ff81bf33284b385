package client

import (
    "encoding/json"
    "fmt"
    "net/http"
)

// APIError is the normalized form of every error body the server family
// can produce. Backends in the wild answer with three shapes: a plain
// {"error": "..."} string, a validation list {"detail": [{"field","msg"}]}
// and a nested object {"detail": {"msg": "..."}}. All three collapse into
// a single Message plus optional per-field messages, so callers never
// branch on the wire shape.
type APIError struct {
    StatusCode  int
    Message     string
    FieldErrors map[string]string
}

func (e *APIError) Error() string {
    if len(e.FieldErrors) > 0 {
        return fmt.Sprintf("%s (%d): %d field errors", e.Message, e.StatusCode, len(e.FieldErrors))
    }
    return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// IsAuthError reports whether the error is a 401 from the API.
func IsAuthError(err error) bool {
    apiErr, ok := err.(*APIError)
    return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// detailItem covers both {"field","msg"} and FastAPI-style
// {"loc":[...,"field"],"msg"} validation entries.
type detailItem struct {
    Field string `json:"field"`
    Loc   []any  `json:"loc"`
    Msg   string `json:"msg"`
}

func (d detailItem) fieldName() string {
    if d.Field != "" {
        return d.Field
    }
    if n := len(d.Loc); n > 0 {
        if s, ok := d.Loc[n-1].(string); ok {
            return s
        }
    }
    return ""
}

// normalizeError turns a non-2xx response body into an APIError. Bodies
// that are not JSON, or JSON of an unknown shape, fall back to a generic
// message carrying the status code.
func normalizeError(status int, body []byte) *APIError {
    out := &APIError{StatusCode: status, Message: http.StatusText(status)}

    var envelope struct {
        Error   string          `json:"error"`
        Message string          `json:"message"`
        Detail  json.RawMessage `json:"detail"`
    }
    if err := json.Unmarshal(body, &envelope); err != nil {
        return out
    }

    if envelope.Error != "" {
        out.Message = envelope.Error
    }
    if envelope.Message != "" {
        out.Message = envelope.Message
    }
    if len(envelope.Detail) == 0 {
        return out
    }

    // detail as a plain string
    var s string
    if err := json.Unmarshal(envelope.Detail, &s); err == nil {
        out.Message = s
        return out
    }

    // detail as a validation list
    var items []detailItem
    if err := json.Unmarshal(envelope.Detail, &items); err == nil {
        out.FieldErrors = map[string]string{}
        for _, it := range items {
            if f := it.fieldName(); f != "" {
                out.FieldErrors[f] = it.Msg
            } else if it.Msg != "" && out.Message == http.StatusText(status) {
                out.Message = it.Msg
            }
        }
        if len(out.FieldErrors) > 0 && out.Message == http.StatusText(status) {
            out.Message = "validation failed"
        }
        return out
    }

    // detail as a nested object
    var nested struct {
        Msg     string `json:"msg"`
        Message string `json:"message"`
    }
    if err := json.Unmarshal(envelope.Detail, &nested); err == nil {
        if nested.Msg != "" {
            out.Message = nested.Msg
        } else if nested.Message != "" {
            out.Message = nested.Message
        }
    }
    return out
}
