package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/repository"
)

// SellerHandler bundles dependencies for the seller cabinet: listing
// management, stores, incoming orders, questions and buyer matchmaking.
type SellerHandler struct {
    Cars      *repository.CarRepo
    Stores    *repository.StoreRepo
    Orders    *repository.OrderRepo
    Users     *repository.UserRepo
    Questions *repository.QuestionRepo
}

func NewSellerHandler(cars *repository.CarRepo, stores *repository.StoreRepo,
    orders *repository.OrderRepo, users *repository.UserRepo,
    questions *repository.QuestionRepo) *SellerHandler {
    return &SellerHandler{Cars: cars, Stores: stores, Orders: orders, Users: users, Questions: questions}
}

// ----- DTOs -----

type carReq struct {
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

func validateCar(req *carReq) []fieldError {
    var errs []fieldError
    if strings.TrimSpace(req.Brand) == "" {
        errs = append(errs, fieldError{Field: "brand", Msg: "brand is required"})
    }
    if strings.TrimSpace(req.Model) == "" {
        errs = append(errs, fieldError{Field: "model", Msg: "model is required"})
    }
    if req.Year < 1900 || req.Year > time.Now().Year()+1 {
        errs = append(errs, fieldError{Field: "year", Msg: "year is out of range"})
    }
    if req.Price <= 0 {
        errs = append(errs, fieldError{Field: "price", Msg: "price must be positive"})
    }
    if req.Mileage < 0 {
        errs = append(errs, fieldError{Field: "mileage", Msg: "mileage cannot be negative"})
    }
    switch req.Transmission {
    case model.TransmissionManual, model.TransmissionAutomatic:
    default:
        errs = append(errs, fieldError{Field: "transmission", Msg: "transmission must be manual or automatic"})
    }
    switch req.Condition {
    case model.ConditionNew, model.ConditionUsed:
    default:
        errs = append(errs, fieldError{Field: "condition", Msg: "condition must be new or used"})
    }
    return errs
}

// CreateCar handles POST /v1/seller/cars. The target store must belong
// to the authenticated seller.
func (h *SellerHandler) CreateCar(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if errs := validateCar(&req); len(errs) > 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": errs})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Stores.GetByIDAndOwner(ctx, req.StoreID, uid); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    car := model.Car{
        SellerID: uid, StoreID: req.StoreID,
        Brand: req.Brand, Model: req.Model, Year: req.Year, Price: req.Price,
        Mileage: req.Mileage, Transmission: req.Transmission, FuelType: req.FuelType,
        Condition: req.Condition, Power: req.Power, Color: req.Color,
        Features: req.Features, Images: req.Images,
    }
    if err := h.Cars.Create(ctx, &car); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
    }
    return c.JSON(http.StatusCreated, toCarItem(car))
}

// MyCars handles GET /v1/seller/cars: the seller's full inventory
// including inactive and sold listings.
func (h *SellerHandler) MyCars(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cars, err := h.Cars.ListBySeller(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]carItem, 0, len(cars))
    for _, car := range cars {
        out = append(out, toCarItem(car))
    }
    return c.JSON(http.StatusOK, out)
}

// UpdateCar handles PUT /v1/seller/cars/:id.
func (h *SellerHandler) UpdateCar(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if errs := validateCar(&req); len(errs) > 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": errs})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Stores.GetByIDAndOwner(ctx, req.StoreID, uid); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    car := model.Car{
        ID: id, SellerID: uid, StoreID: req.StoreID,
        Brand: req.Brand, Model: req.Model, Year: req.Year, Price: req.Price,
        Mileage: req.Mileage, Transmission: req.Transmission, FuelType: req.FuelType,
        Condition: req.Condition, Power: req.Power, Color: req.Color,
        Features: req.Features, Images: req.Images,
    }
    if err := h.Cars.Update(ctx, &car); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    updated, err := h.Cars.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toCarItem(updated))
}

type carStatusReq struct {
    Status string `json:"status"`
}

// UpdateCarStatus handles PATCH /v1/seller/cars/:id/status. Transitions
// follow the listing lifecycle: active and inactive flip freely and may
// go to sold; sold is final.
func (h *SellerHandler) UpdateCarStatus(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req carStatusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    to := model.CarStatus(req.Status)
    if !model.ValidCarStatus(to) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
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
    if car.SellerID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
    }

    if err := h.Cars.UpdateStatus(ctx, id, car.Status, to); err != nil {
        switch err {
        case repository.ErrInvalidTransition:
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error": "invalid transition",
                "message": "cannot move listing from " + string(car.Status) + " to " + string(to),
            })
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "listing status changed concurrently"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    car.Status = to
    return c.JSON(http.StatusOK, toCarItem(car))
}

// DeleteCar handles DELETE /v1/seller/cars/:id. A listing with a pending
// or approved order cannot be deleted.
func (h *SellerHandler) DeleteCar(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    open, err := h.Orders.HasOpenForCar(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if open {
        return c.JSON(http.StatusConflict, echo.Map{"error": "listing has open orders"})
    }

    if err := h.Cars.Delete(ctx, id, uid); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
