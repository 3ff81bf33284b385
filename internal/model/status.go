package model

import "fmt"

// CarStatus enumerates the lifecycle states of a car listing.  A listing
// starts as `active` when the seller creates it, can be taken off the
// market (`inactive`) and put back, and ends up `sold` once an order for
// it is approved.  `sold` is terminal: the server refuses transitions out
// of it, and clients must not offer one.
type CarStatus string

const (
    CarActive   CarStatus = "active"   // listed and purchasable
    CarInactive CarStatus = "inactive" // withdrawn by the seller, can return
    CarSold     CarStatus = "sold"     // terminal
)

// OrderStatus enumerates the states of a purchase order.  Orders are
// created `pending` by a buyer and moved by the owning seller.
type OrderStatus string

const (
    OrderPending   OrderStatus = "pending"
    OrderApproved  OrderStatus = "approved"
    OrderRejected  OrderStatus = "rejected"  // terminal
    OrderCompleted OrderStatus = "completed" // terminal
)

// carTransitions and orderTransitions are the single source of truth for
// which status changes are legal.  Both the HTTP handlers and the client
// SDK consult these tables so that an illegal transition is rejected
// before it reaches the database and is never offered in a UI.
var carTransitions = map[CarStatus][]CarStatus{
    CarActive:   {CarInactive, CarSold},
    CarInactive: {CarActive, CarSold},
    CarSold:     {},
}

var orderTransitions = map[OrderStatus][]OrderStatus{
    OrderPending:   {OrderApproved, OrderRejected},
    OrderApproved:  {OrderCompleted},
    OrderRejected:  {},
    OrderCompleted: {},
}

// ValidCarStatus reports whether s is a known car status.
func ValidCarStatus(s CarStatus) bool {
    _, ok := carTransitions[s]
    return ok
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
    _, ok := orderTransitions[s]
    return ok
}

// CanCarTransition reports whether a listing may move from one status to
// another.  Self-transitions are not allowed.
func CanCarTransition(from, to CarStatus) bool {
    for _, t := range carTransitions[from] {
        if t == to {
            return true
        }
    }
    return false
}

// CanOrderTransition reports whether an order may move from one status to
// another.
func CanOrderTransition(from, to OrderStatus) bool {
    for _, t := range orderTransitions[from] {
        if t == to {
            return true
        }
    }
    return false
}

// CheckCarTransition returns a descriptive error when the transition is
// not allowed, nil otherwise.
func CheckCarTransition(from, to CarStatus) error {
    if !ValidCarStatus(to) {
        return fmt.Errorf("unknown car status %q", to)
    }
    if !CanCarTransition(from, to) {
        return fmt.Errorf("car status cannot change from %q to %q", from, to)
    }
    return nil
}

// CheckOrderTransition returns a descriptive error when the transition is
// not allowed, nil otherwise.
func CheckOrderTransition(from, to OrderStatus) error {
    if !ValidOrderStatus(to) {
        return fmt.Errorf("unknown order status %q", to)
    }
    if !CanOrderTransition(from, to) {
        return fmt.Errorf("order status cannot change from %q to %q", from, to)
    }
    return nil
}

// Purchasable reports whether a buyer may open an order against a listing
// in the given status.  Only `active` listings accept orders; callers are
// expected to check this before issuing the create call.
func Purchasable(s CarStatus) bool {
    return s == CarActive
}
