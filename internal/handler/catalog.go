package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/repository"
)

// CatalogHandler serves the public listing catalogue: browse with
// filters, listing detail and the canned selections (low mileage, new).
type CatalogHandler struct {
    Cars      *repository.CarRepo
    Users     *repository.UserRepo
    Stores    *repository.StoreRepo
    Questions *repository.QuestionRepo
}

func NewCatalogHandler(cars *repository.CarRepo, users *repository.UserRepo,
    stores *repository.StoreRepo, questions *repository.QuestionRepo) *CatalogHandler {
    return &CatalogHandler{Cars: cars, Users: users, Stores: stores, Questions: questions}
}

// carItem is the browse-row payload shared by the catalogue, seller
// inventory and favorites endpoints.
type carItem struct {
    ID           uint64          `json:"id"`
    SellerID     uint64          `json:"seller_id"`
    StoreID      uint64          `json:"store_id"`
    Brand        string          `json:"brand"`
    Model        string          `json:"model"`
    Year         int             `json:"year"`
    Price        float64         `json:"price"`
    Mileage      int             `json:"mileage"`
    Transmission string          `json:"transmission"`
    FuelType     string          `json:"fuel_type"`
    Condition    string          `json:"condition"`
    Power        int             `json:"power"`
    Color        string          `json:"color"`
    Features     []string        `json:"features"`
    Images       []string        `json:"images"`
    Status       model.CarStatus `json:"status"`
    SellerName   string          `json:"seller_name,omitempty"`
    StoreName    string          `json:"store_name,omitempty"`
    CreatedAt    time.Time       `json:"created_at"`
}

func toCarItem(c model.Car) carItem {
    return carItem{
        ID: c.ID, SellerID: c.SellerID, StoreID: c.StoreID,
        Brand: c.Brand, Model: c.Model, Year: c.Year, Price: c.Price,
        Mileage: c.Mileage, Transmission: c.Transmission, FuelType: c.FuelType,
        Condition: c.Condition, Power: c.Power, Color: c.Color,
        Features: c.Features, Images: c.Images, Status: c.Status,
        CreatedAt: c.CreatedAt,
    }
}

func toCarItems(rows []repository.CarRow) []carItem {
    out := make([]carItem, 0, len(rows))
    for _, r := range rows {
        item := toCarItem(r.Car)
        item.SellerName = r.SellerName
        item.StoreName = r.StoreName
        out = append(out, item)
    }
    return out
}

func queryInt(c echo.Context, name string) int {
    n, _ := strconv.Atoi(c.QueryParam(name))
    return n
}

func queryFloat(c echo.Context, name string) float64 {
    f, _ := strconv.ParseFloat(c.QueryParam(name), 64)
    return f
}

// List handles GET /v1/cars. All filters are optional query parameters;
// unknown status values are rejected rather than silently ignored.
func (h *CatalogHandler) List(c echo.Context) error {
    q := repository.CarSearchQuery{
        Brand:        c.QueryParam("brand"),
        Model:        c.QueryParam("model"),
        MinYear:      queryInt(c, "min_year"),
        MaxYear:      queryInt(c, "max_year"),
        MinPrice:     queryFloat(c, "min_price"),
        MaxPrice:     queryFloat(c, "max_price"),
        Condition:    c.QueryParam("condition"),
        Transmission: c.QueryParam("transmission"),
        MaxMileage:   queryInt(c, "max_mileage"),
        Status:       c.QueryParam("status"),
        Skip:         queryInt(c, "skip"),
        Limit:        queryInt(c, "limit"),
    }
    if q.Status != "" && !model.ValidCarStatus(model.CarStatus(q.Status)) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, total, err := h.Cars.Search(ctx, q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": toCarItems(rows),
        "total": total,
    })
}

// carDetail extends the browse row with the seller, store and question
// thread shown on a listing page.
type carDetail struct {
    carItem
    Seller *struct {
        ID          uint64 `json:"id"`
        FullName    string `json:"full_name"`
        ContactInfo string `json:"contact_info"`
    } `json:"seller,omitempty"`
    Store *struct {
        ID      uint64 `json:"id"`
        Name    string `json:"name"`
        Address string `json:"address"`
    } `json:"store,omitempty"`
    Questions []questionResp `json:"questions"`
}

type questionResp struct {
    ID        uint64    `json:"id"`
    CarID     uint64    `json:"car_id"`
    Question  string    `json:"question"`
    Answer    *string   `json:"answer"`
    CreatedAt time.Time `json:"created_at"`
}

func toQuestionResps(qs []model.Question) []questionResp {
    out := make([]questionResp, 0, len(qs))
    for _, q := range qs {
        out = append(out, questionResp{
            ID: q.ID, CarID: q.CarID, Question: q.Question,
            Answer: q.Answer, CreatedAt: q.CreatedAt,
        })
    }
    return out
}

// Get handles GET /v1/cars/:id.
func (h *CatalogHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    detail := carDetail{carItem: toCarItem(car)}

    if seller, err := h.Users.GetByID(ctx, car.SellerID); err == nil {
        detail.Seller = &struct {
            ID          uint64 `json:"id"`
            FullName    string `json:"full_name"`
            ContactInfo string `json:"contact_info"`
        }{ID: seller.ID, FullName: seller.FullName, ContactInfo: seller.ContactInfo}
        detail.SellerName = seller.FullName
    }
    if store, err := h.Stores.GetByID(ctx, car.StoreID); err == nil {
        detail.Store = &struct {
            ID      uint64 `json:"id"`
            Name    string `json:"name"`
            Address string `json:"address"`
        }{ID: store.ID, Name: store.Name, Address: store.Address}
        detail.StoreName = store.Name
    }

    qs, err := h.Questions.ListByCar(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    detail.Questions = toQuestionResps(qs)

    return c.JSON(http.StatusOK, detail)
}

// ListQuestions handles GET /v1/cars/:id/questions.
func (h *CatalogHandler) ListQuestions(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Cars.GetByID(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    qs, err := h.Questions.ListByCar(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toQuestionResps(qs))
}

// LowMileage handles GET /v1/queries/cars-low-mileage: listings under
// 30 000 km, a canned selection surfaced on the landing page.
func (h *CatalogHandler) LowMileage(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Cars.ListLowMileage(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toCarItems(rows))
}

// NewCars handles GET /v1/queries/new-cars: listings in `new` condition.
func (h *CatalogHandler) NewCars(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Cars.ListNew(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toCarItems(rows))
}
