package client

import (
    "context"
    "fmt"
    "net/http"
    "strconv"
)

// Order lifecycle states as the API reports them.
const (
    OrderPending   = "pending"
    OrderApproved  = "approved"
    OrderRejected  = "rejected"
    OrderCompleted = "completed"
)

// orderTransitions mirrors the server's order lifecycle. Pending orders
// resolve to approved or rejected; approved ones complete; rejected and
// completed are final.
var orderTransitions = map[string][]string{
    OrderPending:   {OrderApproved, OrderRejected},
    OrderApproved:  {OrderCompleted},
    OrderRejected:  {},
    OrderCompleted: {},
}

// CanOrderTransition reports whether an order may move from one status
// to the other.
func CanOrderTransition(from, to string) bool {
    for _, t := range orderTransitions[from] {
        if t == to {
            return true
        }
    }
    return false
}

// Order is a purchase order as the API returns it.
type Order struct {
    ID       uint64  `json:"id"`
    CarID    uint64  `json:"car_id"`
    BuyerID  uint64  `json:"buyer_id"`
    SellerID uint64  `json:"seller_id"`
    Price    float64 `json:"price"`
    Status   string  `json:"status"`
}

// OrderSummary is a row of the buyer's or seller's order list: the order
// plus the car it targets and the opposite party's display info.
type OrderSummary struct {
    ID        uint64  `json:"id"`
    Status    string  `json:"status"`
    Price     float64 `json:"price"`
    CreatedAt string  `json:"created_at"`
    Car       struct {
        ID     uint64 `json:"id"`
        Brand  string `json:"brand"`
        Model  string `json:"model"`
        Year   int    `json:"year"`
        Status string `json:"status"`
    } `json:"car"`
    SellerName   string `json:"seller_name,omitempty"`
    BuyerName    string `json:"buyer_name,omitempty"`
    BuyerContact string `json:"buyer_contact,omitempty"`
}

// CreateOrder places an order for the listing. The listing's current
// status is checked first: when it is not purchasable the method fails
// without ever calling the order endpoint, so the server never sees
// doomed requests from stale buttons. The server re-checks under a row
// lock regardless.
func (c *Client) CreateOrder(ctx context.Context, carID uint64) (Order, error) {
    var o Order
    if !c.pending.acquire("order-create", carID) {
        return o, ErrPending
    }
    defer c.pending.release("order-create", carID)

    detail, err := c.CarByID(ctx, carID)
    if err != nil {
        return o, err
    }
    if !Purchasable(detail.Status) {
        return o, &APIError{
            StatusCode: http.StatusConflict,
            Message:    fmt.Sprintf("car is %s and cannot be ordered", detail.Status),
        }
    }

    body := map[string]uint64{"car_id": carID}
    err = c.do(ctx, http.MethodPost, "/v1/orders", body, &o, true)
    return o, err
}

// MyOrders returns the buyer's orders.
func (c *Client) MyOrders(ctx context.Context) ([]OrderSummary, error) {
    var out []OrderSummary
    err := c.do(ctx, http.MethodGet, "/v1/orders", nil, &out, true)
    return out, err
}

// SellerOrders returns orders placed against the seller's listings.
func (c *Client) SellerOrders(ctx context.Context) ([]OrderSummary, error) {
    var out []OrderSummary
    err := c.do(ctx, http.MethodGet, "/v1/seller/orders", nil, &out, true)
    return out, err
}

// ApprovalResult reports both halves of an approval: the order's new
// status and the car's. Both always come from server responses, never
// from assumption.
type ApprovalResult struct {
    OrderID     uint64
    OrderStatus string
    CarID       uint64
    CarStatus   string
}

type orderStatusResponse struct {
    ID        uint64 `json:"id"`
    CarID     uint64 `json:"car_id"`
    Status    string `json:"status"`
    CarStatus string `json:"car_status"`
}

// ApproveOrder approves a pending order. The current server performs the
// order and car updates in one transaction and confirms both in the
// response. Against an older backend that only updates the order, the
// car is marked sold with a second call; if that second call fails the
// approval is undone by putting the order back to pending, so the two
// records cannot drift apart and the seller can retry, and the partial
// failure is reported.
func (c *Client) ApproveOrder(ctx context.Context, orderID uint64) (ApprovalResult, error) {
    var res ApprovalResult
    if !c.pending.acquire("order", orderID) {
        return res, ErrPending
    }
    defer c.pending.release("order", orderID)

    var resp orderStatusResponse
    body := map[string]string{"status": OrderApproved}
    err := c.do(ctx, http.MethodPatch, "/v1/orders/"+strconv.FormatUint(orderID, 10)+"/status", body, &resp, true)
    if err != nil {
        return res, err
    }
    res = ApprovalResult{OrderID: resp.ID, OrderStatus: resp.Status, CarID: resp.CarID, CarStatus: resp.CarStatus}

    if resp.CarStatus != "" {
        // Atomic backend: both changes confirmed in one response.
        return res, nil
    }

    // Legacy backend: mark the car sold ourselves.
    carErr := c.SetCarStatus(ctx, resp.CarID, CarSold)
    if carErr == nil {
        res.CarStatus = CarSold
        return res, nil
    }

    // Compensate so an approved order never points at an unsold car.
    // Pending is the revert target: it undoes the approval without
    // consuming the order, leaving the seller free to retry.
    revert := map[string]string{"status": OrderPending}
    if revErr := c.do(ctx, http.MethodPatch, "/v1/orders/"+strconv.FormatUint(orderID, 10)+"/status", revert, nil, true); revErr != nil {
        return res, fmt.Errorf("approve order %d: car update failed (%v) and revert failed (%v)", orderID, carErr, revErr)
    }
    res.OrderStatus = OrderPending
    return res, fmt.Errorf("approve order %d: car update failed, order reverted to pending: %w", orderID, carErr)
}

// RejectOrder rejects a pending order.
func (c *Client) RejectOrder(ctx context.Context, orderID uint64) (Order, error) {
    return c.setOrderStatus(ctx, orderID, OrderRejected)
}

func (c *Client) setOrderStatus(ctx context.Context, orderID uint64, status string) (Order, error) {
    var o Order
    if !c.pending.acquire("order", orderID) {
        return o, ErrPending
    }
    defer c.pending.release("order", orderID)
    body := map[string]string{"status": status}
    err := c.do(ctx, http.MethodPatch, "/v1/orders/"+strconv.FormatUint(orderID, 10)+"/status", body, &o, true)
    return o, err
}

// CompleteOrder closes an approved deal (buyer side).
func (c *Client) CompleteOrder(ctx context.Context, orderID uint64) error {
    if !c.pending.acquire("order", orderID) {
        return ErrPending
    }
    defer c.pending.release("order", orderID)
    return c.do(ctx, http.MethodPatch, "/v1/orders/"+strconv.FormatUint(orderID, 10)+"/complete", nil, nil, true)
}

// SetCarStatus moves a seller's listing between lifecycle states. The
// server validates the transition; use CanCarTransition to disable
// impossible actions in a UI before calling.
func (c *Client) SetCarStatus(ctx context.Context, carID uint64, status string) error {
    if !c.pending.acquire("car", carID) {
        return ErrPending
    }
    defer c.pending.release("car", carID)
    body := map[string]string{"status": status}
    return c.do(ctx, http.MethodPatch, "/v1/seller/cars/"+strconv.FormatUint(carID, 10)+"/status", body, nil, true)
}
