package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework for routing

    "github.com/Nihihitik/car-dealership/internal/handler"    // handlers implementing business logic
    "github.com/Nihihitik/car-dealership/internal/middleware" // JWT authentication and role enforcement
    "github.com/Nihihitik/car-dealership/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check,
// which load balancers and monitoring use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login under /v1/auth plus the
// account endpoints under /v1/me. Buyers and sellers register through
// separate endpoints so the role never travels in the request body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register/buyer", a.RegisterBuyer)
    g.POST("/register/seller", a.RegisterSeller)
    g.POST("/login", a.Login)

    // The /me endpoints accept both roles; the handler shapes the payload
    // per role (buyers additionally carry their saved preferences).
    me := e.Group(
        "/v1/me",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleBuyer, model.RoleSeller),
    )
    me.GET("", a.Me)
    me.PUT("", a.UpdateMe)
    me.DELETE("", a.DeleteMe)
}

// RegisterPublic registers the unauthenticated catalogue and the chat
// widget. The extra middleware (response cache, rate limiter) applies to
// the browse endpoints only; the assistant is rate limited but never
// cached since every conversation is unique.
func RegisterPublic(e *echo.Echo, p *handler.CatalogHandler, ai *handler.AssistantHandler, cache, limit echo.MiddlewareFunc) {
    browse := e.Group("", limit, cache)
    browse.GET("/v1/cars", p.List)
    browse.GET("/v1/cars/:id", p.Get)
    browse.GET("/v1/cars/:id/questions", p.ListQuestions)
    // Canned landing-page selections
    browse.GET("/v1/queries/cars-low-mileage", p.LowMileage)
    browse.GET("/v1/queries/new-cars", p.NewCars)

    e.POST("/v1/assistant", ai.Chat, limit)
}
