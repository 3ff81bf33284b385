package client

import (
    "context"
    "net/http"
    "net/url"
    "strconv"
)

// CarListing carries the fields a seller submits when creating or
// updating a listing.
type CarListing struct {
    StoreID      uint64   `json:"store_id"`
    Brand        string   `json:"brand"`
    Model        string   `json:"model"`
    Year         int      `json:"year"`
    Price        float64  `json:"price"`
    Mileage      int      `json:"mileage"`
    Transmission string   `json:"transmission"`
    FuelType     string   `json:"fuel_type"`
    Condition    string   `json:"condition"`
    Power        int      `json:"power"`
    Color        string   `json:"color"`
    Features     []string `json:"features"`
    Images       []string `json:"images"`
}

// CreateCar publishes a new listing. New listings start active.
func (c *Client) CreateCar(ctx context.Context, l CarListing) (Car, error) {
    var car Car
    err := c.do(ctx, http.MethodPost, "/v1/seller/cars", l, &car, true)
    return car, err
}

// UpdateCar rewrites a listing's editable fields.
func (c *Client) UpdateCar(ctx context.Context, carID uint64, l CarListing) (Car, error) {
    var car Car
    err := c.do(ctx, http.MethodPut, "/v1/seller/cars/"+strconv.FormatUint(carID, 10), l, &car, true)
    return car, err
}

// DeleteCar removes a listing. Listings with open orders cannot be
// deleted and return a conflict.
func (c *Client) DeleteCar(ctx context.Context, carID uint64) error {
    return c.do(ctx, http.MethodDelete, "/v1/seller/cars/"+strconv.FormatUint(carID, 10), nil, nil, true)
}

// MyCars returns the seller's full inventory, sold listings included.
func (c *Client) MyCars(ctx context.Context) ([]Car, error) {
    var cars []Car
    err := c.do(ctx, http.MethodGet, "/v1/seller/cars", nil, &cars, true)
    return cars, err
}

// Store is a seller-owned dealership location.
type Store struct {
    ID      uint64 `json:"id"`
    OwnerID uint64 `json:"owner_id"`
    Name    string `json:"name"`
    Address string `json:"address"`
}

// CreateStore adds a store. Listings attach to stores, so a seller
// needs at least one before publishing cars.
func (c *Client) CreateStore(ctx context.Context, name, address string) (Store, error) {
    var s Store
    body := map[string]string{"name": name, "address": address}
    err := c.do(ctx, http.MethodPost, "/v1/seller/stores", body, &s, true)
    return s, err
}

// MyStores lists the seller's stores.
func (c *Client) MyStores(ctx context.Context) ([]Store, error) {
    var out []Store
    err := c.do(ctx, http.MethodGet, "/v1/seller/stores", nil, &out, true)
    return out, err
}

// UpdateStore renames or re-addresses a store.
func (c *Client) UpdateStore(ctx context.Context, storeID uint64, name, address string) (Store, error) {
    var s Store
    body := map[string]string{"name": name, "address": address}
    err := c.do(ctx, http.MethodPut, "/v1/seller/stores/"+strconv.FormatUint(storeID, 10), body, &s, true)
    return s, err
}

// DeleteStore removes a store without listings attached.
func (c *Client) DeleteStore(ctx context.Context, storeID uint64) error {
    return c.do(ctx, http.MethodDelete, "/v1/seller/stores/"+strconv.FormatUint(storeID, 10), nil, nil, true)
}

// AnswerQuestion stores the seller's answer on a listing question.
func (c *Client) AnswerQuestion(ctx context.Context, questionID uint64, answer string) error {
    body := map[string]string{"answer": answer}
    return c.do(ctx, http.MethodPatch, "/v1/questions/"+strconv.FormatUint(questionID, 10)+"/answer", body, nil, true)
}

// BuyerMatch is a buyer whose saved preferences accept a listing.
type BuyerMatch struct {
    ID          uint64   `json:"id"`
    FullName    string   `json:"full_name"`
    ContactInfo string   `json:"contact_info"`
    MaxPrice    *float64 `json:"max_price"`
}

// BuyersForCar returns buyers whose preference profile matches one of
// the seller's listings.
func (c *Client) BuyersForCar(ctx context.Context, carID uint64) ([]BuyerMatch, error) {
    var out []BuyerMatch
    err := c.do(ctx, http.MethodGet, "/v1/queries/buyers-for-car?car_id="+strconv.FormatUint(carID, 10), nil, &out, true)
    return out, err
}

// BuyersByModel returns buyers whose saved preference names the model.
func (c *Client) BuyersByModel(ctx context.Context, model string) ([]BuyerMatch, error) {
    var out []BuyerMatch
    err := c.do(ctx, http.MethodGet, "/v1/queries/buyers-by-model?model="+url.QueryEscape(model), nil, &out, true)
    return out, err
}
