// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderApprovedEvent is published when a seller approves a purchase order
// and the car is marked sold. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type OrderApprovedEvent struct {
    OrderID    uint64  `json:"order_id"`
    CarID      uint64  `json:"car_id"`
    BuyerID    uint64  `json:"buyer_id"`
    SellerID   uint64  `json:"seller_id"`
    Brand      string  `json:"brand"`
    CarModel   string  `json:"model"`
    Year       int     `json:"year"`
    Price      float64 `json:"price"`
    ApprovedAt string  `json:"approved_at"`
}
