package router

import (
    "github.com/labstack/echo/v4"

    "github.com/Nihihitik/car-dealership/internal/handler"
    "github.com/Nihihitik/car-dealership/internal/middleware"
    "github.com/Nihihitik/car-dealership/internal/model"
)

// RegisterSeller registers seller-scoped endpoints under /v1.
// All routes require a valid JWT and the seller role.
func RegisterSeller(e *echo.Echo, h *handler.SellerHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleSeller),
    )

    // ---- Listings ----
    g.POST("/seller/cars", h.CreateCar)
    g.GET("/seller/cars", h.MyCars)
    g.PUT("/seller/cars/:id", h.UpdateCar)
    g.PATCH("/seller/cars/:id/status", h.UpdateCarStatus)
    g.DELETE("/seller/cars/:id", h.DeleteCar)

    // ---- Stores ----
    g.POST("/seller/stores", h.CreateStore)
    g.GET("/seller/stores", h.MyStores)
    g.PUT("/seller/stores/:id", h.UpdateStore)
    g.DELETE("/seller/stores/:id", h.DeleteStore)

    // ---- Orders ----
    g.GET("/seller/orders", h.MyOrders)
    g.PATCH("/orders/:id/status", h.UpdateOrderStatus)

    // ---- Questions ----
    g.PATCH("/questions/:id/answer", h.AnswerQuestion)

    // ---- Matchmaking ----
    // Buyer contact details are exposed here, hence the seller role gate.
    g.GET("/queries/buyers-for-car", h.BuyersForCar)
    g.GET("/queries/buyers-by-model", h.BuyersByModel)
}
