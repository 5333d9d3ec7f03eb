package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/config"
	"github.com/noah-isme/timebank-api/internal/database"
	"github.com/noah-isme/timebank-api/internal/handler"
	"github.com/noah-isme/timebank-api/internal/middleware"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/repository"
	"github.com/noah-isme/timebank-api/internal/router"
	"github.com/noah-isme/timebank-api/internal/scheduler"
	"github.com/noah-isme/timebank-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.AppEnv != "production" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	logger = logger.With().Str("service", cfg.AppName).Logger()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, leaderboard cache disabled")
			redisClient = nil
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, ledger events disabled")
			natsConn = nil
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	publisher := service.NewNATSLedgerPublisher(natsConn, cfg.EventSubjectPrefix)

	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	mentorActivityRepo := repository.NewMentorActivityRepository(db)
	studentActivityRepo := repository.NewStudentActivityRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	accountService := service.NewAccountService(studentRepo, mentorRepo, service.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL), validate, cfg.BcryptCost, logger)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, redisClient, cfg.LeaderboardCacheTTL, logger)
	ledgerService := service.NewLedgerService(mentorRepo, studentRepo, mentorActivityRepo, studentActivityRepo, leaderboardService, publisher, validate, logger)
	pointsService := service.NewPointsService(mentorRepo, mentorActivityRepo, redemptionRepo, rewardRepo, publisher, validate, logger)
	rewardService := service.NewRewardService(rewardRepo, validate, cfg.SeedToken, logger)
	reportService := service.NewReportService(mentorRepo, mentorActivityRepo, logger)

	var reportScheduler *scheduler.ReportScheduler
	if cfg.ReportsEnabled() {
		reportScheduler = scheduler.NewReportScheduler(reportService, cfg.ReportSchedule, cfg.ReportDir, logger)
		if err := reportScheduler.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start report scheduler")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AccountHandler:     handler.NewAccountHandler(accountService, logger),
		ActivityHandler:    handler.NewActivityHandler(ledgerService, logger),
		PointsHandler:      handler.NewPointsHandler(pointsService, logger),
		ReportHandler:      handler.NewReportHandler(reportService, logger),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService, logger),
		RewardHandler:      handler.NewRewardHandler(rewardService, logger),
		SeedHandler:        handler.NewSeedHandler(rewardService, logger),
		HealthProbes:       healthProbes(db, redisClient),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Msg("http server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)

	if reportScheduler != nil {
		reportScheduler.Stop()
	}
	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			logger.Warn().Err(err).Msg("failed to drain nats connection")
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn().Err(err).Msg("failed to close database")
	}
	logger.Info().Msg("shutdown complete")
}

func healthProbes(db *gorm.DB, redisClient *redis.Client) map[string]handler.HealthProbe {
	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return probes
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
