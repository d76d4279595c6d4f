package main

import (
	"context"
	"log"
	"strings"
	"time"

	"canteen-backend/internal/audit"
	"canteen-backend/internal/auth"
	"canteen-backend/internal/config"
	"canteen-backend/internal/dashboard"
	"canteen-backend/internal/database"
	"canteen-backend/internal/forecast"
	"canteen-backend/internal/menu"
	"canteen-backend/internal/models"
	"canteen-backend/internal/order"
	"canteen-backend/internal/sales"
	"canteen-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Core wiring: ledger + resolver feed the fulfillment transaction,
	// aggregator feeds the forecaster.
	ledger := stock.NewLedger(cfg.AllowNegativeStock)
	resolver := menu.NewResolver(database.DB)
	orderService := order.NewService(
		order.NewGormMenuReader(database.DB),
		resolver,
		order.NewGormStore(database.DB, ledger),
	)
	forecastService := forecast.NewService(
		forecast.NewGormMenuLister(database.DB),
		sales.NewAggregator(database.DB),
	)

	var forecastCache *forecast.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("[WARN] redis not reachable at %s, forecast cache disabled: %v", cfg.RedisAddr, err)
		} else {
			forecastCache = forecast.NewCache(rdb, 5*time.Minute)
			log.Println("connected to redis, forecast cache enabled")
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Menu
	protected.Get("/menu", menu.ListMenuHandler())
	protected.Get("/menu-items/:id/recipe", menu.GetRecipeHandler())

	// Ingredients & stock status
	protected.Get("/ingredients", stock.ListIngredientsHandler())
	protected.Get("/ingredients/:id", stock.GetIngredientHandler())

	// Orders
	protected.Post("/orders", order.CreateOrderHandler(orderService))
	protected.Get("/orders/recent", order.RecentOrdersHandler())

	// Analytics & forecasting
	protected.Get("/analytics/sales", sales.AnalyticsHandler())
	protected.Get("/forecast", forecast.ForecastAllHandler(forecastService, forecastCache, cfg.ForecastWindowDays))
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Admin-only management
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/menu-items", menu.CreateMenuItemHandler())
	adminRoutes.Put("/menu-items/:id", menu.UpdateMenuItemHandler())
	adminRoutes.Put("/menu-items/:id/recipe", menu.UpdateRecipeHandler())

	adminRoutes.Post("/ingredients", stock.CreateIngredientHandler())
	adminRoutes.Put("/ingredients/:id", stock.UpdateIngredientHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
