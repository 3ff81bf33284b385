package model

import "time"

// Favorite is a buyer's bookmark on a listing.  The (BuyerID, CarID)
// pair is unique, so adding twice is a conflict and removing an absent
// row is a not-found; a toggle is built from those two operations.
//
// Fields:
//  ID      – primary key identifier.
//  BuyerID – user who saved the listing.
//  CarID   – saved listing.
//  AddedAt – when the bookmark was created.
type Favorite struct {
    ID      uint64    // favorites.id
    BuyerID uint64    // favorites.buyer_id
    CarID   uint64    // favorites.car_id
    AddedAt time.Time // favorites.added_at
}
