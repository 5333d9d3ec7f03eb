package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseDriver      string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	EventSubjectPrefix  string
	JWTSecret           string
	JWTTTL              time.Duration
	BcryptCost          int
	LeaderboardCacheTTL time.Duration
	SeedToken           string
	ReportDir           string
	ReportSchedule      string
	LoginRateLimit      int
	RedeemRateLimit     int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ReportsEnabled reports whether the scheduled report export should run.
func (c Config) ReportsEnabled() bool {
	return strings.TrimSpace(c.ReportDir) != "" && strings.TrimSpace(c.ReportSchedule) != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TIMEBANK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TimeBank API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("events.subject_prefix", "timebank")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("bcrypt.cost", 12)
	v.SetDefault("leaderboard.cache_ttl", "1m")
	v.SetDefault("report.schedule", "0 0 1 * *")
	v.SetDefault("ratelimit.login", 10)
	v.SetDefault("ratelimit.redeem", 5)

	jwtTTL, err := parseDuration(v.GetString("jwt.ttl"), 24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	cacheTTL, err := parseDuration(v.GetString("leaderboard.cache_ttl"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseDriver:      strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		EventSubjectPrefix:  v.GetString("events.subject_prefix"),
		JWTSecret:           v.GetString("jwt.secret"),
		JWTTTL:              jwtTTL,
		BcryptCost:          v.GetInt("bcrypt.cost"),
		LeaderboardCacheTTL: cacheTTL,
		SeedToken:           v.GetString("seed.token"),
		ReportDir:           v.GetString("report.dir"),
		ReportSchedule:      v.GetString("report.schedule"),
		LoginRateLimit:      v.GetInt("ratelimit.login"),
		RedeemRateLimit:     v.GetInt("ratelimit.redeem"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.DatabaseDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 12
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
