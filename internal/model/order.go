package model

import "time"

// Order records a buyer's request to purchase a listing.  The price is
// snapshotted from the car at creation time so that later price edits do
// not change an open deal.  SellerID is denormalized from the car to keep
// the seller's order listing a single-table scan.
//
// Fields:
//  ID        – primary key identifier.
//  CarID     – listing being purchased.
//  BuyerID   – user who opened the order.
//  SellerID  – user who owns the listing.
//  Price     – agreed price, copied from the car when the order is created.
//  Status    – order lifecycle state, see OrderStatus.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Order struct {
    ID        uint64      // orders.id
    CarID     uint64      // orders.car_id
    BuyerID   uint64      // orders.buyer_id
    SellerID  uint64      // orders.seller_id
    Price     float64     // orders.price
    Status    OrderStatus // orders.status
    CreatedAt time.Time   // orders.created_at
    UpdatedAt time.Time   // orders.updated_at
}
