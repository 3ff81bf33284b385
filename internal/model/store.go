package model

import "time"

// Store is a seller-owned dealership location that listings attach to.
// A seller must create a store before publishing a car.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – seller who owns the store.
//  Name      – store name, unique per owner.
//  Address   – street address shown on listing detail pages.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Store struct {
    ID        uint64    // stores.id
    OwnerID   uint64    // stores.owner_id
    Name      string    // stores.name
    Address   string    // stores.address
    CreatedAt time.Time // stores.created_at
    UpdatedAt time.Time // stores.updated_at
}
