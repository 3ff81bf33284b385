package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/utils"
)

const testSecret = "test-secret"

func runWithAuth(t *testing.T, header string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var captured echo.Context
    h := func(c echo.Context) error {
        captured = c
        return c.NoContent(http.StatusOK)
    }
    for i := len(mw) - 1; i >= 0; i-- {
        h = mw[i](h)
    }
    if err := h(c); err != nil {
        t.Fatalf("handler chain: %v", err)
    }
    return rec, captured
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 42, "seller", 5)
    if err != nil {
        t.Fatalf("issue token: %v", err)
    }

    rec, c := runWithAuth(t, "Bearer "+tok.Token, JWTAuth(testSecret))
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
    }
    if uid := currentUserID(c); uid != "42" {
        t.Fatalf("user_id claim = %q, want 42", uid)
    }
    if role, _ := c.Get("role").(string); role != "seller" {
        t.Fatalf("role claim = %q, want seller", role)
    }
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
    cases := map[string]string{
        "missing header": "",
        "not bearer":     "Basic abc",
        "garbage token":  "Bearer not.a.jwt",
    }
    for name, header := range cases {
        rec, _ := runWithAuth(t, header, JWTAuth(testSecret))
        if rec.Code != http.StatusUnauthorized {
            t.Errorf("%s: status = %d, want 401", name, rec.Code)
        }
    }
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("other-secret", 1, "buyer", 5)
    if err != nil {
        t.Fatal(err)
    }
    rec, _ := runWithAuth(t, "Bearer "+tok.Token, JWTAuth(testSecret))
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("status = %d, want 401", rec.Code)
    }
}

func TestRequireRoleGatesByClaim(t *testing.T) {
    buyerTok, _ := utils.NewAccessToken(testSecret, 2, "buyer", 5)

    rec, _ := runWithAuth(t, "Bearer "+buyerTok.Token, JWTAuth(testSecret), RequireRole("seller"))
    if rec.Code != http.StatusForbidden {
        t.Fatalf("buyer on seller route: status = %d, want 403", rec.Code)
    }

    rec, _ = runWithAuth(t, "Bearer "+buyerTok.Token, JWTAuth(testSecret), RequireRole("buyer", "seller"))
    if rec.Code != http.StatusOK {
        t.Fatalf("buyer on shared route: status = %d, want 200", rec.Code)
    }
}
