package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/Nihihitik/car-dealership/internal/assistant"
    "github.com/Nihihitik/car-dealership/internal/config"
    "github.com/Nihihitik/car-dealership/internal/database"
    "github.com/Nihihitik/car-dealership/internal/handler"
    "github.com/Nihihitik/car-dealership/internal/middleware"
    "github.com/Nihihitik/car-dealership/internal/queue"
    "github.com/Nihihitik/car-dealership/internal/repository"
    "github.com/Nihihitik/car-dealership/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments use the environment

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("open database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Migrate(ctx, db); err != nil {
        cancel()
        log.Fatalf("migrate: %v", err)
    }
    cancel()

    // Repositories
    users := repository.NewUserRepo(db)
    cars := repository.NewCarRepo(db)
    stores := repository.NewStoreRepo(db)
    orders := repository.NewOrderRepo(db)
    favorites := repository.NewFavoriteRepo(db)
    questions := repository.NewQuestionRepo(db)

    // Handlers
    auth := handler.NewAuthHandler(cfg, users)
    catalog := handler.NewCatalogHandler(cars, users, stores, questions)
    seller := handler.NewSellerHandler(cars, stores, orders, users, questions)
    buyer := handler.NewBuyerHandler(cars, orders, favorites, questions)

    // The assistant is optional: without an API key the endpoint reports 503.
    var ai *assistant.Client
    if cfg.AssistantAPIKey != "" {
        ai, err = assistant.NewClient(context.Background(), cfg.AssistantAPIKey, cfg.AssistantModel)
        if err != nil {
            log.Printf("assistant disabled: %v", err)
            ai = nil
        }
    }
    assistantH := handler.NewAssistantHandler(ai)

    // Redis backs the catalogue response cache and the rate limiter. When
    // it is unreachable both degrade to pass-through middleware.
    rdb := config.NewRedisClient()
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    // Background consumer: appends approved orders to logs/orders.log.
    go func() {
        if err := queue.StartOrderConsumer(); err != nil {
            log.Printf("order consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Logger())
    e.Use(echomw.Recover())
    e.Use(echomw.CORS())

    router.RegisterRoutes(e)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterPublic(e, catalog, assistantH, cacheMW, limitMW)
    router.RegisterBuyer(e, buyer, cfg.JWTSecret)
    router.RegisterSeller(e, seller, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
