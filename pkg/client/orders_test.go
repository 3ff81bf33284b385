package client_test

import (
    "context"
    "encoding/json"
    "net/http"
    "strings"
    "sync/atomic"
    "testing"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

func TestCreateOrderSkipsNetworkForUnavailableCar(t *testing.T) {
    var orderCalls int32
    c, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch {
        case r.Method == http.MethodGet && r.URL.Path == "/v1/cars/5":
            _ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "status": "inactive"})
        case r.URL.Path == "/v1/orders":
            atomic.AddInt32(&orderCalls, 1)
            w.WriteHeader(http.StatusConflict)
        default:
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
    }))

    _, err := c.CreateOrder(context.Background(), 5)
    if err == nil {
        t.Fatal("want error for inactive car")
    }
    apiErr, ok := err.(*client.APIError)
    if !ok || apiErr.StatusCode != http.StatusConflict {
        t.Fatalf("want 409 APIError, got %v", err)
    }
    if !strings.Contains(apiErr.Message, "inactive") {
        t.Fatalf("error does not name the blocking status: %q", apiErr.Message)
    }
    if n := atomic.LoadInt32(&orderCalls); n != 0 {
        t.Fatalf("order endpoint was called %d times for an unavailable car", n)
    }
}

func TestCreateOrderActiveCar(t *testing.T) {
    c, _ := newBuyerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch {
        case r.Method == http.MethodGet && r.URL.Path == "/v1/cars/5":
            _ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "status": "active", "price": 15000})
        case r.Method == http.MethodPost && r.URL.Path == "/v1/orders":
            var body map[string]uint64
            _ = json.NewDecoder(r.Body).Decode(&body)
            if body["car_id"] != 5 {
                t.Fatalf("order for car %d, want 5", body["car_id"])
            }
            w.WriteHeader(http.StatusCreated)
            _ = json.NewEncoder(w).Encode(map[string]any{
                "id": 7, "car_id": 5, "buyer_id": 2, "seller_id": 3,
                "price": 15000, "status": "pending",
            })
        default:
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
    }))

    o, err := c.CreateOrder(context.Background(), 5)
    if err != nil {
        t.Fatalf("create order: %v", err)
    }
    if o.ID != 7 || o.Status != client.OrderPending || o.Price != 15000 {
        t.Fatalf("order = %+v", o)
    }
}

func newSellerClient(t *testing.T, handler http.Handler) *client.Client {
    t.Helper()
    c, _ := newBuyerClient(t, handler)
    _ = c.Session().Set("T", "seller")
    return c
}

func TestApproveOrderAtomicBackend(t *testing.T) {
    var carPatches int32
    c := newSellerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch {
        case r.Method == http.MethodPatch && r.URL.Path == "/v1/orders/7/status":
            _ = json.NewEncoder(w).Encode(map[string]any{
                "id": 7, "car_id": 5, "status": "approved", "car_status": "sold",
            })
        case strings.HasPrefix(r.URL.Path, "/v1/seller/cars/"):
            atomic.AddInt32(&carPatches, 1)
            w.WriteHeader(http.StatusOK)
        default:
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
    }))

    res, err := c.ApproveOrder(context.Background(), 7)
    if err != nil {
        t.Fatalf("approve: %v", err)
    }
    if res.OrderStatus != client.OrderApproved || res.CarStatus != client.CarSold {
        t.Fatalf("result = %+v", res)
    }
    // The server confirmed both changes; no follow-up car call is needed.
    if n := atomic.LoadInt32(&carPatches); n != 0 {
        t.Fatalf("client patched the car %d times against an atomic backend", n)
    }
}

func TestApproveOrderLegacyBackendMarksCarSold(t *testing.T) {
    c := newSellerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch {
        case r.Method == http.MethodPatch && r.URL.Path == "/v1/orders/7/status":
            // No car_status field: the backend only touched the order.
            _ = json.NewEncoder(w).Encode(map[string]any{
                "id": 7, "car_id": 5, "status": "approved",
            })
        case r.Method == http.MethodPatch && r.URL.Path == "/v1/seller/cars/5/status":
            var body map[string]string
            _ = json.NewDecoder(r.Body).Decode(&body)
            if body["status"] != "sold" {
                t.Fatalf("car patched to %q, want sold", body["status"])
            }
            w.WriteHeader(http.StatusOK)
        default:
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
    }))

    res, err := c.ApproveOrder(context.Background(), 7)
    if err != nil {
        t.Fatalf("approve: %v", err)
    }
    if res.OrderStatus != client.OrderApproved || res.CarStatus != client.CarSold {
        t.Fatalf("result = %+v", res)
    }
}

func TestApproveOrderRevertsToPendingOnCarFailure(t *testing.T) {
    var sawRevert bool
    c := newSellerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        switch {
        case r.Method == http.MethodPatch && r.URL.Path == "/v1/orders/7/status":
            var body map[string]string
            _ = json.NewDecoder(r.Body).Decode(&body)
            switch body["status"] {
            case "pending":
                sawRevert = true
                _ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "status": "pending"})
            case "rejected":
                // A revert must undo the approval, not consume the order.
                w.WriteHeader(http.StatusBadRequest)
                _ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid transition"})
            default:
                _ = json.NewEncoder(w).Encode(map[string]any{
                    "id": 7, "car_id": 5, "status": "approved",
                })
            }
        case r.Method == http.MethodPatch && r.URL.Path == "/v1/seller/cars/5/status":
            w.WriteHeader(http.StatusInternalServerError)
            _ = json.NewEncoder(w).Encode(map[string]string{"error": "update failed"})
        default:
            t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
        }
    }))

    res, err := c.ApproveOrder(context.Background(), 7)
    if err == nil {
        t.Fatal("want error for partial approval")
    }
    if !sawRevert {
        t.Fatal("order was not reverted after the car update failed")
    }
    if res.OrderStatus != client.OrderPending {
        t.Fatalf("result reports %q, want pending after revert", res.OrderStatus)
    }
    if !strings.Contains(err.Error(), "reverted to pending") {
        t.Fatalf("error does not report the revert: %v", err)
    }
}

func TestApproveOrderBlocksReentrantCall(t *testing.T) {
    // Covered behavior: the same order cannot be approved twice
    // concurrently; the second call fails fast without a request.
    entered := make(chan struct{})
    release := make(chan struct{})
    var calls int32

    c := newSellerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt32(&calls, 1)
        close(entered)
        <-release
        _ = json.NewEncoder(w).Encode(map[string]any{
            "id": 7, "car_id": 5, "status": "approved", "car_status": "sold",
        })
    }))

    done := make(chan error, 1)
    go func() {
        _, err := c.ApproveOrder(context.Background(), 7)
        done <- err
    }()
    <-entered

    if _, err := c.ApproveOrder(context.Background(), 7); err != client.ErrPending {
        t.Fatalf("want ErrPending, got %v", err)
    }
    if n := atomic.LoadInt32(&calls); n != 1 {
        t.Fatalf("server saw %d requests, want 1", n)
    }

    close(release)
    if err := <-done; err != nil {
        t.Fatalf("first approve: %v", err)
    }
}
