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

type storeReq struct {
    Name    string `json:"name"`
    Address string `json:"address"`
}

type storeResp struct {
    ID      uint64 `json:"id"`
    OwnerID uint64 `json:"owner_id"`
    Name    string `json:"name"`
    Address string `json:"address"`
}

func toStoreResp(s model.Store) storeResp {
    return storeResp{ID: s.ID, OwnerID: s.OwnerID, Name: s.Name, Address: s.Address}
}

// CreateStore handles POST /v1/seller/stores.
func (h *SellerHandler) CreateStore(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req storeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
            {Field: "name", Msg: "store name is required"},
        }})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    s := model.Store{OwnerID: uid, Name: req.Name, Address: req.Address}
    if err := h.Stores.Create(ctx, &s); err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "store name already used"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create store failed"})
    }
    return c.JSON(http.StatusCreated, toStoreResp(s))
}

// MyStores handles GET /v1/seller/stores.
func (h *SellerHandler) MyStores(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    stores, err := h.Stores.ListByOwner(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]storeResp, 0, len(stores))
    for _, s := range stores {
        out = append(out, toStoreResp(s))
    }
    return c.JSON(http.StatusOK, out)
}

// UpdateStore handles PUT /v1/seller/stores/:id.
func (h *SellerHandler) UpdateStore(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req storeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
            {Field: "name", Msg: "store name is required"},
        }})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Stores.Update(ctx, id, uid, req.Name, req.Address); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    s, err := h.Stores.GetByIDAndOwner(ctx, id, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toStoreResp(s))
}

// DeleteStore handles DELETE /v1/seller/stores/:id. A store that still
// has listings attached cannot be deleted.
func (h *SellerHandler) DeleteStore(c echo.Context) error {
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

    if err := h.Stores.Delete(ctx, id, uid); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "store still has listings"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
