package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/observability"
	"github.com/noah-isme/timebank-api/internal/repository"
)

// PointsService exposes mentor balances and redemptions.
type PointsService interface {
	Balance(ctx context.Context, email string) (dto.BalanceResponse, error)
	Redeem(ctx context.Context, email string, req dto.RedeemRequest) (dto.RedemptionResponse, error)
	ListRedemptions(ctx context.Context, email string) ([]dto.RedemptionResponse, error)
}

type pointsService struct {
	mentors     repository.MentorRepository
	activities  repository.MentorActivityRepository
	redemptions repository.RedemptionRepository
	rewards     repository.RewardRepository
	publisher   LedgerPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
	locks       mentorLocks
}

// NewPointsService constructs the points service.
func NewPointsService(
	mentors repository.MentorRepository,
	activities repository.MentorActivityRepository,
	redemptions repository.RedemptionRepository,
	rewards repository.RewardRepository,
	publisher LedgerPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) PointsService {
	if publisher == nil {
		publisher = NopLedgerPublisher{}
	}
	return &pointsService{
		mentors:     mentors,
		activities:  activities,
		redemptions: redemptions,
		rewards:     rewards,
		publisher:   publisher,
		validator:   validate,
		logger:      logger.With().Str("component", "points_service").Logger(),
	}
}

func (s *pointsService) Balance(ctx context.Context, email string) (dto.BalanceResponse, error) {
	email = models.NormalizeEmail(email)
	if _, err := s.mentors.GetByEmail(ctx, email); err != nil {
		return dto.BalanceResponse{}, principalError(err)
	}

	earned, err := s.activities.SumPoints(ctx, email)
	if err != nil {
		return dto.BalanceResponse{}, storageError("sum earned points", err)
	}
	redeemed, err := s.redemptions.SumSpent(ctx, email)
	if err != nil {
		return dto.BalanceResponse{}, storageError("sum redeemed points", err)
	}

	return dto.BalanceResponse{Earned: earned, Redeemed: redeemed, Balance: earned - redeemed}, nil
}

func (s *pointsService) Redeem(ctx context.Context, email string, req dto.RedeemRequest) (dto.RedemptionResponse, error) {
	email = models.NormalizeEmail(email)

	tracer := otel.Tracer("github.com/noah-isme/timebank-api/internal/service/points")
	ctx, span := tracer.Start(ctx, "points.redeem", trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String("points.mentor_email", email),
		attribute.Int64("points.reward_id", int64(req.RewardID)),
	)
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		observability.Redemptions().WithLabelValues("invalid").Inc()
		return dto.RedemptionResponse{}, err
	}

	unlock := s.locks.lock(email)
	result, err := s.redemptions.Redeem(ctx, email, req.RewardID)
	unlock()

	if err != nil {
		outcome, mapped := redeemFailure(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		observability.Redemptions().WithLabelValues(outcome).Inc()
		if outcome == "error" {
			s.logger.Error().Err(err).Str("email", email).Uint("reward_id", req.RewardID).Msg("redemption failed")
		} else {
			s.logger.Info().Str("email", email).Uint("reward_id", req.RewardID).Str("outcome", outcome).Msg("redemption rejected")
		}
		return dto.RedemptionResponse{}, mapped
	}

	observability.Redemptions().WithLabelValues("success").Inc()
	observability.PointsRedeemed().Add(float64(result.Redemption.PointsSpent))
	span.SetAttributes(attribute.Int64("points.balance", result.Balance))

	publishLedgerEvent(ctx, s.publisher, s.logger, LedgerEvent{
		Type:    EventRedemptionCreated,
		Role:    models.RoleMentor.String(),
		Email:   email,
		EntryID: result.Redemption.ID,
		Points:  -result.Redemption.PointsSpent,
	})

	response := dto.NewRedemptionResponse(result.Redemption, result.Reward.Name)
	balance := result.Balance
	response.Balance = &balance
	return response, nil
}

func (s *pointsService) ListRedemptions(ctx context.Context, email string) ([]dto.RedemptionResponse, error) {
	redemptions, err := s.redemptions.ListByMentor(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, storageError("list redemptions", err)
	}

	names := map[uint]string{}
	if len(redemptions) > 0 {
		rewards, err := s.rewards.List(ctx)
		if err != nil {
			return nil, storageError("list rewards", err)
		}
		for _, reward := range rewards {
			names[reward.ID] = reward.Name
		}
	}

	responses := make([]dto.RedemptionResponse, 0, len(redemptions))
	for _, redemption := range redemptions {
		responses = append(responses, dto.NewRedemptionResponse(redemption, names[redemption.RewardID]))
	}
	return responses, nil
}

func redeemFailure(err error) (string, error) {
	switch {
	case errors.Is(err, repository.ErrInsufficientBalance):
		return "insufficient", ErrInsufficientPoints
	case errors.Is(err, repository.ErrRewardNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return "reward_not_found", ErrRewardNotFound
	case errors.Is(err, repository.ErrMentorNotFound):
		return "mentor_not_found", ErrPrincipalNotFound
	default:
		return "error", storageError("redeem reward", err)
	}
}

// mentorLocks hands out one mutex per mentor email. Entries are reference
// counted and removed once the last holder or waiter releases them.
type mentorLocks struct {
	mu    sync.Mutex
	locks map[string]*mentorLock
}

type mentorLock struct {
	sync.Mutex
	refs int
}

func (l *mentorLocks) lock(email string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*mentorLock)
	}
	m, ok := l.locks[email]
	if !ok {
		m = &mentorLock{}
		l.locks[email] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, email)
		}
		l.mu.Unlock()
	}
}

func (l *mentorLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
