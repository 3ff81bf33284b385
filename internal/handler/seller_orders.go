package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/queue"
    "github.com/Nihihitik/car-dealership/internal/repository"
    queue_publisher "github.com/Nihihitik/car-dealership/internal/service"
)

// MyOrders handles GET /v1/seller/orders: orders placed against the
// seller's listings, with buyer contact details.
func (h *SellerHandler) MyOrders(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    orders, err := h.Orders.ListBySeller(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, orders)
}

type orderStatusReq struct {
    Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /v1/orders/:id/status for sellers.
//
// Approval couples two state changes: the order moves to `approved` and
// the car moves to `sold`. Both run in one database transaction with the
// order and car rows locked, so either both commit or neither does and a
// crash can never leave an approved order against an unsold car. Other
// pending orders for the same car are rejected in the same commit.
func (h *SellerHandler) UpdateOrderStatus(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req orderStatusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    to := model.OrderStatus(req.Status)
    if !model.ValidOrderStatus(to) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
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
    if o.SellerID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
    }
    if err := model.CheckOrderTransition(o.Status, to); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":   "invalid transition",
            "message": err.Error(),
        })
    }

    if to == model.OrderApproved {
        _, _, carStatus, err := h.Orders.GetCarForUpdateTx(ctx, tx, o.CarID)
        if err != nil {
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
        }
        if !model.CanCarTransition(carStatus, model.CarSold) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "car already sold"})
        }
        if err := h.Cars.UpdateStatusTx(ctx, tx, o.CarID, carStatus, model.CarSold); err != nil {
            return c.JSON(http.StatusConflict, echo.Map{"error": "car status changed concurrently"})
        }
        if err := h.Orders.RejectOtherPendingTx(ctx, tx, o.CarID, o.ID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
    }

    if err := h.Orders.UpdateStatusTx(ctx, tx, o.ID, o.Status, to); err != nil {
        switch err {
        case repository.ErrInvalidTransition:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transition"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "order status changed concurrently"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }

    resp := echo.Map{
        "id":       o.ID,
        "car_id":   o.CarID,
        "buyer_id": o.BuyerID,
        "price":    o.Price,
        "status":   to,
    }
    if to == model.OrderApproved {
        resp["car_status"] = model.CarSold

        // Fire-and-forget: a broker outage must not fail the approval.
        car, carErr := h.Cars.GetByID(ctx, o.CarID)
        go func() {
            ev := queue.OrderApprovedEvent{
                OrderID:    o.ID,
                CarID:      o.CarID,
                BuyerID:    o.BuyerID,
                SellerID:   o.SellerID,
                Price:      o.Price,
                ApprovedAt: time.Now().UTC().Format(time.RFC3339),
            }
            if carErr == nil {
                ev.Brand, ev.CarModel, ev.Year = car.Brand, car.Model, car.Year
            }
            pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer pcancel()
            _ = queue_publisher.PublishOrderApproved(pctx, ev)
        }()
    }
    return c.JSON(http.StatusOK, resp)
}
