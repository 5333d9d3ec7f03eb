package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// RewardService reads and seeds the rewards catalog.
type RewardService interface {
	ListRewards(ctx context.Context) ([]dto.RewardResponse, error)
	SeedRewards(ctx context.Context, token string, items []dto.RewardSeedItem) (int64, error)
}

type rewardService struct {
	repo      repository.RewardRepository
	validator *validator.Validate
	token     string
	logger    zerolog.Logger
}

// NewRewardService constructs the catalog service. Seeding stays disabled
// while token is empty.
func NewRewardService(repo repository.RewardRepository, validate *validator.Validate, token string, logger zerolog.Logger) RewardService {
	return &rewardService{
		repo:      repo,
		validator: validate,
		token:     strings.TrimSpace(token),
		logger:    logger.With().Str("component", "reward_service").Logger(),
	}
}

func (s *rewardService) ListRewards(ctx context.Context) ([]dto.RewardResponse, error) {
	rewards, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list rewards", err)
	}
	return dto.NewRewardResponses(rewards), nil
}

func (s *rewardService) SeedRewards(ctx context.Context, token string, items []dto.RewardSeedItem) (int64, error) {
	if s.token == "" {
		return 0, ErrSeedDisabled
	}
	if !tokensEqual(s.token, strings.TrimSpace(token)) {
		return 0, ErrSeedUnauthorized
	}
	if len(items) == 0 {
		return 0, invalid("at least one reward is required")
	}

	seen := make(map[string]int, len(items))
	rows := make([]models.Reward, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if err := s.validator.Struct(item); err != nil {
			return 0, err
		}
		// later duplicates win so one batch never conflicts with itself
		if idx, ok := seen[item.Name]; ok {
			rows[idx].Cost = item.Cost
			continue
		}
		seen[item.Name] = len(rows)
		rows = append(rows, models.Reward{Name: item.Name, Cost: item.Cost})
	}

	affected, err := s.repo.UpsertBatch(ctx, rows)
	if err != nil {
		return 0, storageError("seed rewards", err)
	}
	s.logger.Info().Int64("affected", affected).Msg("rewards seeded")
	return affected, nil
}

// tokensEqual compares fixed-size digests so the token length does not leak.
func tokensEqual(a, b string) bool {
	left := sha256.Sum256([]byte(a))
	right := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(left[:], right[:]) == 1
}
