package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mindshield/mindshield-backend/internal/config"
	"github.com/mindshield/mindshield-backend/internal/handlers"
	"github.com/mindshield/mindshield-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	moodHandler *handlers.MoodHandler,
	gameHandler *handlers.GameHandler,
	voiceHandler *handlers.VoiceHandler,
	insightsHandler *handlers.InsightsHandler,
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

	// Auth — public
	// Auth-specific rate limit: 10 req/min per IP (stricter)
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

	// Protected routes (JWT required) - apply middleware to individual routes
	// This prevents JWT middleware from affecting public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	api.Post("/mood", middleware.JWTProtected(cfg), moodHandler.LogMood)
	api.Get("/insights/:userId", middleware.JWTProtected(cfg), insightsHandler.GetInsights)
	api.Post("/games/session", middleware.JWTProtected(cfg), gameHandler.SaveSession)
	api.Post("/voice/analyze", middleware.JWTProtected(cfg), voiceHandler.Analyze)
	api.Get("/dashboard/:userId", middleware.JWTProtected(cfg), insightsHandler.GetDashboard)
	api.Get("/export/:userId", middleware.JWTProtected(cfg), insightsHandler.ExportData)
	api.Post("/reset/:userId", middleware.JWTProtected(cfg), insightsHandler.ResetData)
}
