// Package router assembles the fiber application and its route tree.
package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fixitlab/buyback-api/app/handlers"
	"github.com/fixitlab/buyback-api/app/middleware"
	"github.com/fixitlab/buyback-api/app/services"
	"github.com/fixitlab/buyback-api/utils"
)

// Handlers bundles every handler the route tree needs.
type Handlers struct {
	Auth      *handlers.AuthAdminHandler
	Pricing   *handlers.PricingAdminHandler
	Quote     *handlers.QuoteHandler
	Inventory *handlers.InventoryHandler
}

// Config carries the router-level knobs.
type Config struct {
	AllowedOrigins []string
	EnableMetrics  bool
}

// New builds the fiber app with the full middleware chain and route tree.
func New(h Handlers, tokenService services.TokenService, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "buyback-api",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut},
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType, "X-Request-ID"},
		MaxAge:       utils.CORSMaxAge,
	}))
	app.Use(middleware.Metrics())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/quote", h.Quote.GetQuote)
	v1.Get("/inventory", h.Inventory.ListStorefront)

	admin := v1.Group("/admin")
	admin.Post("/auth/login", h.Auth.Login, limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}))

	protected := admin.Group("", middleware.AdminAuthenticate(tokenService))

	// Sync triggers get a strict limiter so concurrent runs cannot pile up
	// behind one admin clicking twice.
	syncLimiter := limiter.New(limiter.Config{
		Max:        1,
		Expiration: 10 * time.Second,
	})
	protected.Post("/pricing/sync", h.Pricing.TriggerSync, syncLimiter)
	protected.Post("/inventory/refresh", h.Inventory.RefreshInventory, syncLimiter)

	protected.Get("/pricing/records", h.Pricing.ListRecords)
	protected.Get("/pricing/records/export", h.Pricing.ExportRecords)
	protected.Get("/pricing/records/:id", h.Pricing.GetRecord)
	protected.Put("/pricing/records/:id", h.Pricing.UpdateRecord)
	protected.Get("/pricing/sync-logs", h.Pricing.ListSyncLogs)

	return app
}
