package client_test

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "sync/atomic"
    "testing"
    "time"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

func newBuyerClient(t *testing.T, handler http.Handler) (*client.Client, *httptest.Server) {
    t.Helper()
    srv := httptest.NewServer(handler)
    t.Cleanup(srv.Close)
    c := client.New(srv.URL)
    _ = c.Session().Set("T", "buyer")
    return c, srv
}

func TestToggleFavoriteParity(t *testing.T) {
    var lastMethod string
    c, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/v1/favorites/9" {
            t.Fatalf("unexpected path %s", r.URL.Path)
        }
        lastMethod = r.Method
        switch r.Method {
        case http.MethodPost:
            w.WriteHeader(http.StatusCreated)
            _ = json.NewEncoder(w).Encode(map[string]any{"car_id": 9, "favorite": true})
        case http.MethodDelete:
            _ = json.NewEncoder(w).Encode(map[string]any{"car_id": 9, "favorite": false})
        }
    }))

    fav, err := c.ToggleFavorite(context.Background(), 9, false)
    if err != nil || !fav {
        t.Fatalf("toggle on: fav=%v err=%v", fav, err)
    }
    if lastMethod != http.MethodPost {
        t.Fatalf("toggle on used %s", lastMethod)
    }

    fav, err = c.ToggleFavorite(context.Background(), 9, true)
    if err != nil || fav {
        t.Fatalf("toggle off: fav=%v err=%v", fav, err)
    }
    if lastMethod != http.MethodDelete {
        t.Fatalf("toggle off used %s", lastMethod)
    }
}

func TestToggleFavoriteHealsStaleState(t *testing.T) {
    c, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch r.Method {
        case http.MethodPost: // already saved
            w.WriteHeader(http.StatusConflict)
            _ = json.NewEncoder(w).Encode(map[string]string{"error": "already in favorites"})
        case http.MethodDelete: // already gone
            w.WriteHeader(http.StatusNotFound)
            _ = json.NewEncoder(w).Encode(map[string]string{"error": "not in favorites"})
        }
    }))

    // UI thought the car was not saved, server says it is: resolve to true.
    fav, err := c.ToggleFavorite(context.Background(), 4, false)
    if err != nil || !fav {
        t.Fatalf("conflict add: fav=%v err=%v", fav, err)
    }

    // UI thought the car was saved, server says it is not: resolve to false.
    fav, err = c.ToggleFavorite(context.Background(), 4, true)
    if err != nil || fav {
        t.Fatalf("missing remove: fav=%v err=%v", fav, err)
    }
}

func TestToggleFavoriteBlocksReentrantCall(t *testing.T) {
    var calls int32
    entered := make(chan struct{})
    release := make(chan struct{})

    c, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt32(&calls, 1)
        close(entered)
        <-release
        w.WriteHeader(http.StatusCreated)
        _ = json.NewEncoder(w).Encode(map[string]any{"favorite": true})
    }))

    done := make(chan struct{})
    go func() {
        defer close(done)
        if _, err := c.ToggleFavorite(context.Background(), 7, false); err != nil {
            t.Errorf("first toggle: %v", err)
        }
    }()

    <-entered // first toggle is on the wire

    // The second toggle for the same car fails fast, no second request.
    fav, err := c.ToggleFavorite(context.Background(), 7, false)
    if !errors.Is(err, client.ErrPending) {
        t.Fatalf("want ErrPending, got %v", err)
    }
    if fav != false {
        t.Fatalf("pending toggle changed reported state")
    }
    if n := atomic.LoadInt32(&calls); n != 1 {
        t.Fatalf("server saw %d requests, want 1", n)
    }

    close(release)
    select {
    case <-done:
    case <-time.After(2 * time.Second):
        t.Fatal("first toggle never finished")
    }

    // A different car is not blocked by car 7's in-flight slot.
    c2, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusCreated)
        _ = json.NewEncoder(w).Encode(map[string]any{"favorite": true})
    }))
    if _, err := c2.ToggleFavorite(context.Background(), 8, false); err != nil {
        t.Fatalf("independent car blocked: %v", err)
    }
}
