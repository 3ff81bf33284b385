package client

import (
    "context"
    "net/http"
    "net/url"
    "strconv"
    "time"
)

// Car lifecycle states as the API reports them.
const (
    CarActive   = "active"
    CarInactive = "inactive"
    CarSold     = "sold"
)

// carTransitions mirrors the server's listing lifecycle so clients can
// disable impossible actions before any network round trip. Active and
// inactive flip freely and may go to sold; sold is final.
var carTransitions = map[string][]string{
    CarActive:   {CarInactive, CarSold},
    CarInactive: {CarActive, CarSold},
    CarSold:     {},
}

// CanCarTransition reports whether a listing may move from one status to
// the other.
func CanCarTransition(from, to string) bool {
    for _, t := range carTransitions[from] {
        if t == to {
            return true
        }
    }
    return false
}

// Purchasable reports whether an order may be placed against a listing
// in the given status.
func Purchasable(status string) bool { return status == CarActive }

// Car is a listing as the API returns it.
type Car struct {
    ID           uint64    `json:"id"`
    SellerID     uint64    `json:"seller_id"`
    StoreID      uint64    `json:"store_id"`
    Brand        string    `json:"brand"`
    Model        string    `json:"model"`
    Year         int       `json:"year"`
    Price        float64   `json:"price"`
    Mileage      int       `json:"mileage"`
    Transmission string    `json:"transmission"`
    FuelType     string    `json:"fuel_type"`
    Condition    string    `json:"condition"`
    Power        int       `json:"power"`
    Color        string    `json:"color"`
    Features     []string  `json:"features"`
    Images       []string  `json:"images"`
    Status       string    `json:"status"`
    SellerName   string    `json:"seller_name,omitempty"`
    StoreName    string    `json:"store_name,omitempty"`
    CreatedAt    time.Time `json:"created_at"`
}

// CarQuery are the browse filters. Zero values mean "no filter".
type CarQuery struct {
    Brand        string
    Model        string
    MinYear      int
    MaxYear      int
    MinPrice     float64
    MaxPrice     float64
    Condition    string
    Transmission string
    MaxMileage   int
    Status       string
    Skip         int
    Limit        int
}

func (q CarQuery) encode() string {
    v := url.Values{}
    set := func(k, s string) {
        if s != "" {
            v.Set(k, s)
        }
    }
    setInt := func(k string, n int) {
        if n > 0 {
            v.Set(k, strconv.Itoa(n))
        }
    }
    set("brand", q.Brand)
    set("model", q.Model)
    setInt("min_year", q.MinYear)
    setInt("max_year", q.MaxYear)
    if q.MinPrice > 0 {
        v.Set("min_price", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
    }
    if q.MaxPrice > 0 {
        v.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
    }
    set("condition", q.Condition)
    set("transmission", q.Transmission)
    setInt("max_mileage", q.MaxMileage)
    set("status", q.Status)
    setInt("skip", q.Skip)
    setInt("limit", q.Limit)
    if len(v) == 0 {
        return ""
    }
    return "?" + v.Encode()
}

// CarPage is one page of browse results.
type CarPage struct {
    Items []Car `json:"items"`
    Total int64 `json:"total"`
}

// Cars browses the catalogue with the given filters.
func (c *Client) Cars(ctx context.Context, q CarQuery) (CarPage, error) {
    var page CarPage
    err := c.do(ctx, http.MethodGet, "/v1/cars"+q.encode(), nil, &page, false)
    return page, err
}

// Question is one entry of a listing's Q&A thread.
type Question struct {
    ID        uint64    `json:"id"`
    CarID     uint64    `json:"car_id"`
    Question  string    `json:"question"`
    Answer    *string   `json:"answer"`
    CreatedAt time.Time `json:"created_at"`
}

// CarDetail is a listing plus the seller, store and question thread
// shown on its page.
type CarDetail struct {
    Car
    Seller *struct {
        ID          uint64 `json:"id"`
        FullName    string `json:"full_name"`
        ContactInfo string `json:"contact_info"`
    } `json:"seller"`
    Store *struct {
        ID      uint64 `json:"id"`
        Name    string `json:"name"`
        Address string `json:"address"`
    } `json:"store"`
    Questions []Question `json:"questions"`
}

// CarByID fetches one listing with its seller, store and questions.
func (c *Client) CarByID(ctx context.Context, id uint64) (CarDetail, error) {
    var detail CarDetail
    err := c.do(ctx, http.MethodGet, "/v1/cars/"+strconv.FormatUint(id, 10), nil, &detail, false)
    return detail, err
}

// LowMileageCars returns the under-30000 km selection.
func (c *Client) LowMileageCars(ctx context.Context) ([]Car, error) {
    var cars []Car
    err := c.do(ctx, http.MethodGet, "/v1/queries/cars-low-mileage", nil, &cars, false)
    return cars, err
}

// NewConditionCars returns listings in `new` condition.
func (c *Client) NewConditionCars(ctx context.Context) ([]Car, error) {
    var cars []Car
    err := c.do(ctx, http.MethodGet, "/v1/queries/new-cars", nil, &cars, false)
    return cars, err
}

// AskQuestion posts a buyer question on a listing.
func (c *Client) AskQuestion(ctx context.Context, carID uint64, question string) (Question, error) {
    var q Question
    body := map[string]string{"question": question}
    err := c.do(ctx, http.MethodPost, "/v1/cars/"+strconv.FormatUint(carID, 10)+"/questions", body, &q, true)
    return q, err
}
