package model

import "time"

// Transmission and condition values accepted by the cars table.
const (
    TransmissionManual    = "manual"
    TransmissionAutomatic = "automatic"

    ConditionNew  = "new"
    ConditionUsed = "used"
)

// Car represents a listing in the `cars` table.  Features and Images are
// stored as JSON arrays in their columns and unpacked by the repository.
//
// Fields:
//  ID           – primary key identifier.
//  SellerID     – user who owns the listing.
//  StoreID      – store the listing is attached to.
//  Brand        – manufacturer name.
//  Model        – model name.
//  Year         – production year.
//  Price        – asking price.
//  Mileage      – odometer reading in kilometres.
//  Transmission – "manual" or "automatic".
//  FuelType     – petrol, diesel, electric, hybrid.
//  Condition    – "new" or "used".
//  Power        – engine power in hp.
//  Color        – exterior colour.
//  Features     – unordered list of feature strings.
//  Images       – image references.
//  Status       – listing lifecycle state, see CarStatus.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Car struct {
    ID           uint64    // cars.id
    SellerID     uint64    // cars.seller_id
    StoreID      uint64    // cars.store_id
    Brand        string    // cars.brand
    Model        string    // cars.model
    Year         int       // cars.year
    Price        float64   // cars.price
    Mileage      int       // cars.mileage
    Transmission string    // cars.transmission
    FuelType     string    // cars.fuel_type
    Condition    string    // cars.condition
    Power        int       // cars.power
    Color        string    // cars.color
    Features     []string  // cars.features (JSON array)
    Images       []string  // cars.images (JSON array)
    Status       CarStatus // cars.status
    CreatedAt    time.Time // cars.created_at
    UpdatedAt    time.Time // cars.updated_at
}
