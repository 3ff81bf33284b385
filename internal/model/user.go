package model

import "time"

// Roles stored in the users.role column and embedded in JWT claims.
const (
    RoleBuyer  = "buyer"
    RoleSeller = "seller"
)

// User represents a row in the `users` table.  Buyers and sellers share
// the table and are distinguished by Role.  The json tags are omitted
// because handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address across both roles.
//  PasswordHash – bcrypt hashed password.
//  Role         – "buyer" or "seller".
//  FullName     – display name shown to the other party of a deal.
//  ContactInfo  – free-form contact details (phone, messenger, ...).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    FullName     string    // users.full_name
    ContactInfo  string    // users.contact_info
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// BuyerPreferences holds a buyer's saved search profile from the
// `buyer_preferences` table.  Every field is optional; nil means "any".
// The matchmaking queries use these rows to find buyers for a listing.
type BuyerPreferences struct {
    UserID               uint64   // buyer_preferences.user_id
    PreferredBrand       *string  // buyer_preferences.preferred_brand
    PreferredModel       *string  // buyer_preferences.preferred_model
    MinYear              *int     // buyer_preferences.min_year
    MaxYear              *int     // buyer_preferences.max_year
    MinPower             *int     // buyer_preferences.min_power
    MaxPower             *int     // buyer_preferences.max_power
    PreferredTransmission *string // buyer_preferences.preferred_transmission
    PreferredCondition   *string  // buyer_preferences.preferred_condition
    MaxPrice             *float64 // buyer_preferences.max_price
}
