package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/observability"
	"github.com/noah-isme/timebank-api/internal/repository"
)

// LeaderboardCacheKey prefixes the ranked mentor list. The stored key carries
// the current generation from LeaderboardVersionKey.
const LeaderboardCacheKey = "leaderboard:mentors"

// LeaderboardVersionKey is bumped on every invalidation. A reader that queried
// under an older generation writes to a key nobody reads again.
const LeaderboardVersionKey = "leaderboard:mentors:version"

func leaderboardCacheKey(version int64) string {
	return fmt.Sprintf("%s:v%d", LeaderboardCacheKey, version)
}

// LeaderboardInvalidator drops cached rankings after a mentor ledger write.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// LeaderboardService ranks mentors by total points.
type LeaderboardService interface {
	LeaderboardInvalidator
	TopMentors(ctx context.Context) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo     repository.LeaderboardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLeaderboardService builds the leaderboard reader. A nil cache disables caching.
func NewLeaderboardService(repo repository.LeaderboardRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) TopMentors(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	cacheKey, cacheable := s.currentKey(ctx)
	if cacheable {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				observability.LeaderboardCache().WithLabelValues("hit").Inc()
				return entries, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
		observability.LeaderboardCache().WithLabelValues("miss").Inc()
	}

	rows, err := s.repo.TopMentors(ctx)
	if err != nil {
		return nil, storageError("rank mentors", err)
	}
	entries := dto.NewLeaderboard(rows)

	if cacheable && s.cacheTTL > 0 {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return entries, nil
}

func (s *leaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, LeaderboardVersionKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
	}
}

// currentKey resolves the cache key for the current generation. Caching is
// skipped when the generation cannot be read.
func (s *leaderboardService) currentKey(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	version, err := s.cache.Get(ctx, LeaderboardVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return leaderboardCacheKey(0), true
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read leaderboard cache version")
		return "", false
	}
	return leaderboardCacheKey(version), true
}
