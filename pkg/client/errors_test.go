package client_test

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

// errorFromBody drives a request through the client so the response body
// passes the real normalization path.
func errorFromBody(t *testing.T, status int, body string) *client.APIError {
    t.Helper()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(status)
        _, _ = w.Write([]byte(body))
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    _, err := c.Cars(context.Background(), client.CarQuery{})
    if err == nil {
        t.Fatalf("status %d produced no error", status)
    }
    apiErr, ok := err.(*client.APIError)
    if !ok {
        t.Fatalf("error type %T, want *APIError", err)
    }
    return apiErr
}

func TestNormalizeSimpleErrorShape(t *testing.T) {
    e := errorFromBody(t, http.StatusNotFound, `{"error":"car not found"}`)
    if e.Message != "car not found" || e.StatusCode != 404 {
        t.Fatalf("got %+v", e)
    }
    if len(e.FieldErrors) != 0 {
        t.Fatalf("simple shape produced field errors: %v", e.FieldErrors)
    }
}

func TestNormalizeDetailStringShape(t *testing.T) {
    e := errorFromBody(t, http.StatusBadRequest, `{"detail":"car is not available for purchase"}`)
    if e.Message != "car is not available for purchase" {
        t.Fatalf("got %q", e.Message)
    }
}

func TestNormalizeValidationListShape(t *testing.T) {
    e := errorFromBody(t, http.StatusUnprocessableEntity,
        `{"detail":[{"field":"year","msg":"year is out of range"},{"field":"price","msg":"price must be positive"}]}`)
    if e.FieldErrors["year"] != "year is out of range" {
        t.Fatalf("year error = %q", e.FieldErrors["year"])
    }
    if e.FieldErrors["price"] != "price must be positive" {
        t.Fatalf("price error = %q", e.FieldErrors["price"])
    }
}

func TestNormalizeLocStyleValidationList(t *testing.T) {
    e := errorFromBody(t, http.StatusUnprocessableEntity,
        `{"detail":[{"loc":["body","email"],"msg":"invalid email address"}]}`)
    if e.FieldErrors["email"] != "invalid email address" {
        t.Fatalf("email error = %q (fields: %v)", e.FieldErrors["email"], e.FieldErrors)
    }
}

func TestNormalizeNestedObjectShape(t *testing.T) {
    e := errorFromBody(t, http.StatusConflict, `{"detail":{"msg":"you already have a pending order for this car"}}`)
    if e.Message != "you already have a pending order for this car" {
        t.Fatalf("got %q", e.Message)
    }
}

func TestNormalizeGarbageBodyFallsBack(t *testing.T) {
    e := errorFromBody(t, http.StatusBadGateway, `<html>upstream died</html>`)
    if e.StatusCode != 502 || e.Message == "" {
        t.Fatalf("got %+v", e)
    }
}
