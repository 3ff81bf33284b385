package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/config"
    "github.com/Nihihitik/car-dealership/internal/model"
    "github.com/Nihihitik/car-dealership/internal/repository"
    "github.com/Nihihitik/car-dealership/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and the
// account (/me) endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type preferencesReq struct {
    PreferredBrand        *string  `json:"preferred_brand"`
    PreferredModel        *string  `json:"preferred_model"`
    MinYear               *int     `json:"min_year"`
    MaxYear               *int     `json:"max_year"`
    MinPower              *int     `json:"min_power"`
    MaxPower              *int     `json:"max_power"`
    PreferredTransmission *string  `json:"preferred_transmission"`
    PreferredCondition    *string  `json:"preferred_condition"`
    MaxPrice              *float64 `json:"max_price"`
}

type registerReq struct {
    Email       string          `json:"email"`
    Password    string          `json:"password"`
    FullName    string          `json:"full_name"`
    ContactInfo string          `json:"contact_info"`
    Preferences *preferencesReq `json:"preferences"` // buyers only
}

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenResp struct {
    AccessToken string `json:"access_token"`
    TokenType   string `json:"token_type"`
    Role        string `json:"role"`
}

type userResp struct {
    ID          uint64 `json:"id"`
    Email       string `json:"email"`
    Role        string `json:"role"`
    FullName    string `json:"full_name"`
    ContactInfo string `json:"contact_info"`
}

// validateRegister collects field-level problems into a detail list so
// the client can attach each message to its form field.
func validateRegister(req *registerReq) []fieldError {
    var errs []fieldError
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || !strings.Contains(req.Email, "@") {
        errs = append(errs, fieldError{Field: "email", Msg: "invalid email address"})
    }
    if len(req.Password) < 6 {
        errs = append(errs, fieldError{Field: "password", Msg: "password must be at least 6 characters"})
    }
    if strings.TrimSpace(req.FullName) == "" {
        errs = append(errs, fieldError{Field: "full_name", Msg: "full name is required"})
    }
    return errs
}

// RegisterBuyer creates a buyer account, optionally with a saved search
// profile for the matchmaking queries.
func (h *AuthHandler) RegisterBuyer(c echo.Context) error {
    return h.register(c, model.RoleBuyer)
}

// RegisterSeller creates a seller account.
func (h *AuthHandler) RegisterSeller(c echo.Context) error {
    return h.register(c, model.RoleSeller)
}

func (h *AuthHandler) register(c echo.Context, role string) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if errs := validateRegister(&req); len(errs) > 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": errs})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Email, req.Password, role, req.FullName, req.ContactInfo, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    if role == model.RoleBuyer && req.Preferences != nil {
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

    return c.JSON(http.StatusCreated, userResp{
        ID: uid, Email: req.Email, Role: role,
        FullName: req.FullName, ContactInfo: req.ContactInfo,
    })
}

// Login verifies credentials and returns a bearer access token. The role
// travels alongside the token so clients can route to the right cabinet
// without decoding the JWT.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    return c.JSON(http.StatusOK, tokenResp{
        AccessToken: access.Token,
        TokenType:   "bearer",
        Role:        u.Role,
    })
}
