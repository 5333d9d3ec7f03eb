package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/timebank-api/internal/config"
	"github.com/noah-isme/timebank-api/internal/handler"
	"github.com/noah-isme/timebank-api/internal/middleware"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AccountHandler     *handler.AccountHandler
	ActivityHandler    *handler.ActivityHandler
	PointsHandler      *handler.PointsHandler
	ReportHandler      *handler.ReportHandler
	LeaderboardHandler *handler.LeaderboardHandler
	RewardHandler      *handler.RewardHandler
	SeedHandler        *handler.SeedHandler
	HealthProbes       map[string]handler.HealthProbe
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	if deps.AccountHandler != nil {
		auth := api.Group("/auth")
		auth.Post("/login", middleware.RateLimit("login", cfg.LoginRateLimit, time.Minute))
		deps.AccountHandler.Register(auth)

		deps.AccountHandler.RegisterProfile(api, jwtMiddleware)
	}

	mentor := api.Group("/mentor", jwtMiddleware, middleware.RequireRole(models.RoleMentor))
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.RegisterMentor(mentor)
	}
	if deps.PointsHandler != nil {
		mentor.Post("/redemptions", middleware.RateLimit("redeem", cfg.RedeemRateLimit, time.Minute))
		deps.PointsHandler.Register(mentor)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(mentor)
	}

	if deps.ActivityHandler != nil {
		student := api.Group("/student", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.ActivityHandler.RegisterStudent(student)
	}

	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(api.Group("/leaderboard", jwtMiddleware))
	}
	if deps.RewardHandler != nil {
		deps.RewardHandler.Register(api.Group("/rewards", jwtMiddleware))
	}
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}
}
