package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/repository"
)

// AddFavorite handles POST /v1/favorites/:car_id. Adding a car that is
// already saved is reported as a conflict so a toggling client can
// resolve the true membership state.
func (h *BuyerHandler) AddFavorite(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    carID, err := pathID(c, "car_id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Cars.GetByID(ctx, carID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if err := h.Favorites.Add(ctx, uid, carID); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "already in favorites"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"car_id": carID, "favorite": true})
}

// RemoveFavorite handles DELETE /v1/favorites/:car_id.
func (h *BuyerHandler) RemoveFavorite(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    carID, err := pathID(c, "car_id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Favorites.Remove(ctx, uid, carID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "not in favorites"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"car_id": carID, "favorite": false})
}

// MyFavorites handles GET /v1/favorites: the buyer's saved listings,
// most recent first.
func (h *BuyerHandler) MyFavorites(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    favs, err := h.Favorites.ListByBuyer(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    type favItem struct {
        carItem
        AddedAt string `json:"added_at"`
    }
    out := make([]favItem, 0, len(favs))
    for _, f := range favs {
        out = append(out, favItem{carItem: toCarItem(f.Car), AddedAt: f.AddedAt})
    }
    return c.JSON(http.StatusOK, out)
}
