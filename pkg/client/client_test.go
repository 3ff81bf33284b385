package client_test

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

func TestLoginStoresTokenAndRole(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/v1/auth/login" || r.Method != http.MethodPost {
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
        var body map[string]string
        _ = json.NewDecoder(r.Body).Decode(&body)
        if body["email"] != "a@b.com" || body["password"] != "pw123456" {
            w.WriteHeader(http.StatusUnauthorized)
            _ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
            return
        }
        _ = json.NewEncoder(w).Encode(map[string]string{
            "access_token": "T", "token_type": "bearer", "role": "buyer",
        })
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    role, err := c.Login(context.Background(), "a@b.com", "pw123456")
    if err != nil {
        t.Fatalf("login: %v", err)
    }
    if role != "buyer" {
        t.Fatalf("role = %q, want buyer", role)
    }
    if c.Session().Token() != "T" || c.Session().Role() != "buyer" {
        t.Fatalf("session = %q/%q, want T/buyer", c.Session().Token(), c.Session().Role())
    }
}

func TestAuthedCallSendsBearerToken(t *testing.T) {
    var gotAuth string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        _ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": "a@b.com", "role": "buyer"})
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    _ = c.Session().Set("T", "buyer")

    if _, err := c.Me(context.Background()); err != nil {
        t.Fatalf("me: %v", err)
    }
    if gotAuth != "Bearer T" {
        t.Fatalf("Authorization = %q, want Bearer T", gotAuth)
    }
}

func TestExpiredTokenClearsSessionAndNotifies(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
        _ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    _ = c.Session().Set("stale", "buyer")

    expired := 0
    c.OnAuthExpired = func() { expired++ }

    _, err := c.Me(context.Background())
    if !client.IsAuthError(err) {
        t.Fatalf("want auth error, got %v", err)
    }
    // Token and role are cleared together, never one without the other.
    if c.Session().Token() != "" || c.Session().Role() != "" {
        t.Fatalf("session not cleared: %q/%q", c.Session().Token(), c.Session().Role())
    }
    if expired != 1 {
        t.Fatalf("OnAuthExpired fired %d times, want 1", expired)
    }
}

func TestRepeatedUnauthorizedNotifiesOnce(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
        _ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    _ = c.Session().Set("stale", "buyer")

    expired := 0
    c.OnAuthExpired = func() { expired++ }

    // Several callers can hit 401 for the same expiry; every call still
    // fails, but only the one that clears the token notifies.
    for i := 0; i < 3; i++ {
        if _, err := c.Me(context.Background()); !client.IsAuthError(err) {
            t.Fatalf("call %d: want auth error, got %v", i, err)
        }
    }
    if expired != 1 {
        t.Fatalf("OnAuthExpired fired %d times for one expiry, want 1", expired)
    }
}

func TestFailedLoginDoesNotClearExistingSession(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
        _ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
    }))
    defer srv.Close()

    c := client.New(srv.URL)
    _ = c.Session().Set("valid", "seller")

    if _, err := c.Login(context.Background(), "x@y.com", "wrong"); err == nil {
        t.Fatal("want error from failed login")
    }
    // A rejected login attempt is not a session expiry.
    if c.Session().Token() != "valid" {
        t.Fatalf("existing session was cleared by failed login")
    }
}
