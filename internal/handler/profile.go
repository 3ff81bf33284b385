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

// profileResp is the /me payload. Preferences are present for buyers
// and omitted for sellers.
type profileResp struct {
    ID          uint64          `json:"id"`
    Email       string          `json:"email"`
    Role        string          `json:"role"`
    FullName    string          `json:"full_name"`
    ContactInfo string          `json:"contact_info"`
    Preferences *preferencesReq `json:"preferences,omitempty"`
}

type updateProfileReq struct {
    FullName    *string         `json:"full_name"`
    ContactInfo *string         `json:"contact_info"`
    Preferences *preferencesReq `json:"preferences"`
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    resp := profileResp{
        ID: u.ID, Email: u.Email, Role: u.Role,
        FullName: u.FullName, ContactInfo: u.ContactInfo,
    }
    if u.Role == model.RoleBuyer {
        p, err := h.Users.GetPreferences(ctx, uid)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
        }
        resp.Preferences = &preferencesReq{
            PreferredBrand:        p.PreferredBrand,
            PreferredModel:        p.PreferredModel,
            MinYear:               p.MinYear,
            MaxYear:               p.MaxYear,
            MinPower:              p.MinPower,
            MaxPower:              p.MaxPower,
            PreferredTransmission: p.PreferredTransmission,
            PreferredCondition:    p.PreferredCondition,
            MaxPrice:              p.MaxPrice,
        }
    }
    return c.JSON(http.StatusOK, resp)
}

// UpdateMe updates the mutable profile fields. Omitted fields keep their
// current value; a buyer's preferences object replaces the saved profile
// wholesale when present.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req updateProfileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    fullName := u.FullName
    if req.FullName != nil {
        if strings.TrimSpace(*req.FullName) == "" {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []fieldError{
                {Field: "full_name", Msg: "full name is required"},
            }})
        }
        fullName = *req.FullName
    }
    contact := u.ContactInfo
    if req.ContactInfo != nil {
        contact = *req.ContactInfo
    }

    if err := h.Users.UpdateProfile(ctx, uid, fullName, contact); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    if u.Role == model.RoleBuyer && req.Preferences != nil {
        p := req.Preferences
        prefs := model.BuyerPreferences{
            UserID:                uid,
            PreferredBrand:        p.PreferredBrand,
            PreferredModel:        p.PreferredModel,
            MinYear:               p.MinYear,
            MaxYear:               p.MaxYear,
            MinPower:              p.MinPower,
            MaxPower:              p.MaxPower,
            PreferredTransmission: p.PreferredTransmission,
            PreferredCondition:    p.PreferredCondition,
            MaxPrice:              p.MaxPrice,
        }
        if err := h.Users.UpsertPreferences(ctx, prefs); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save preferences failed"})
        }
    }
    return h.Me(c)
}

// DeleteMe removes the account. Favorites and preferences cascade;
// listings and orders keep their history.
func (h *AuthHandler) DeleteMe(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.Delete(ctx, uid); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
