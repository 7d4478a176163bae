package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ottlabs/ott-platform/internal/config"
	"github.com/ottlabs/ott-platform/internal/handlers"
	"github.com/ottlabs/ott-platform/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Catalog — listing is public, watching requires a session
	api.Get("/movies", catalogHandler.ListMovies)
	api.Get("/movies/:id", catalogHandler.GetMovie)
	api.Post("/movies/:id/watch", middleware.JWTProtected(cfg), catalogHandler.Watch)
	api.Get("/watch-history", middleware.JWTProtected(cfg), catalogHandler.WatchHistory)

	// Notifications and storage analytics for the logged-in user
	api.Get("/notifications", middleware.JWTProtected(cfg), notificationHandler.List)
	api.Put("/notifications/:id/read", middleware.JWTProtected(cfg), notificationHandler.MarkRead)
	api.Get("/storage", middleware.JWTProtected(cfg), notificationHandler.Storage)

	// Admin trigger surface: list inactive users, run the job now, add
	// movies, delete a user by id.
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/inactive-users", adminHandler.ListInactiveUsers)
	admin.Post("/notifications/run", adminHandler.RunNotificationJob)
	admin.Post("/movies", catalogHandler.AddMovie)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
