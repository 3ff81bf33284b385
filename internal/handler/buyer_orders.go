package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/repository"
)

// BuyerHandler bundles dependencies for the buyer cabinet: placing
// orders, favorites and asking questions on listings.
type BuyerHandler struct {
    Cars      *repository.CarRepo
    Orders    *repository.OrderRepo
    Favorites *repository.FavoriteRepo
    Questions *repository.QuestionRepo
}

func NewBuyerHandler(cars *repository.CarRepo, orders *repository.OrderRepo,
    favorites *repository.FavoriteRepo, questions *repository.QuestionRepo) *BuyerHandler {
    return &BuyerHandler{Cars: cars, Orders: orders, Favorites: favorites, Questions: questions}
}

type createOrderReq struct {
    CarID uint64 `json:"car_id"`
}

type orderResp struct {
    ID       uint64            `json:"id"`
    CarID    uint64            `json:"car_id"`
    BuyerID  uint64            `json:"buyer_id"`
    SellerID uint64            `json:"seller_id"`
    Price    float64           `json:"price"`
    Status   model.OrderStatus `json:"status"`
    Created  time.Time         `json:"created_at"`
}

// CreateOrder handles POST /v1/orders. The car row is locked for the
// duration of the transaction: the availability check, the duplicate
// check and the insert all see the same state, so two buyers racing for
// the last car cannot both end up with a pending order against a car
// that meanwhile went inactive or sold.
func (h *BuyerHandler) CreateOrder(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createOrderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.CarID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    tx, err := h.Orders.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
    }
    defer func() { _ = tx.Rollback() }()

    sellerID, price, status, err := h.Orders.GetCarForUpdateTx(ctx, tx, req.CarID)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !model.Purchasable(status) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "car is not available for purchase"})
    }
    if sellerID == uid {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot order your own listing"})
    }

    exists, err := h.Orders.ExistsPendingTx(ctx, tx, uid, req.CarID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if exists {
        return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a pending order for this car"})
    }

    o := model.Order{
        CarID:    req.CarID,
        BuyerID:  uid,
        SellerID: sellerID,
        Price:    price, // snapshot, later price edits do not touch the deal
        Status:   model.OrderPending,
    }
    if err := h.Orders.CreateTx(ctx, tx, &o); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }

    return c.JSON(http.StatusCreated, orderResp{
        ID: o.ID, CarID: o.CarID, BuyerID: o.BuyerID, SellerID: o.SellerID,
        Price: o.Price, Status: o.Status, Created: o.CreatedAt,
    })
}

// MyOrders handles GET /v1/orders: the buyer's orders with car and
// seller info.
func (h *BuyerHandler) MyOrders(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    orders, err := h.Orders.ListByBuyer(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, orders)
}

// CompleteOrder handles PATCH /v1/orders/:id/complete: the buyer closes
// an approved deal after the handover.
func (h *BuyerHandler) CompleteOrder(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    tx, err := h.Orders.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
    }
    defer func() { _ = tx.Rollback() }()

    o, err := h.Orders.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if o.BuyerID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
    }
    if err := h.Orders.UpdateStatusTx(ctx, tx, o.ID, o.Status, model.OrderCompleted); err != nil {
        switch err {
        case repository.ErrInvalidTransition:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "only approved orders can be completed"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "order status changed concurrently"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": o.ID, "status": model.OrderCompleted})
}
