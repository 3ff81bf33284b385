package router

import (
    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/handler"
    "github.com/Nihihitik/car-dealership/internal/middleware"
    "github.com/Nihihitik/car-dealership/internal/model"
)

// RegisterBuyer registers buyer-scoped endpoints under /v1. All routes
// require a valid JWT and the buyer role. Buyers place orders, complete
// approved deals, manage favorites and ask questions on listings.
func RegisterBuyer(e *echo.Echo, h *handler.BuyerHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleBuyer),
    )

    // ---- Orders ----
    g.POST("/orders", h.CreateOrder)
    g.GET("/orders", h.MyOrders)
    g.PATCH("/orders/:id/complete", h.CompleteOrder)

    // ---- Favorites ----
    g.GET("/favorites", h.MyFavorites)
    g.POST("/favorites/:car_id", h.AddFavorite)
    g.DELETE("/favorites/:car_id", h.RemoveFavorite)

    // ---- Questions ----
    // Reading the thread is public (GET /v1/cars/:id/questions); asking
    // requires a buyer account.
    g.POST("/cars/:id/questions", h.AskQuestion)
}
