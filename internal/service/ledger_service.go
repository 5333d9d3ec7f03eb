package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/observability"
	"github.com/noah-isme/timebank-api/internal/repository"
)

// LedgerService appends to and reads the activity ledgers.
type LedgerService interface {
	LogMentorActivity(ctx context.Context, email string, req dto.MentorActivityRequest) (dto.MentorActivityResponse, error)
	LogStudentActivity(ctx context.Context, email string, req dto.StudentActivityRequest) (dto.StudentActivityResponse, error)
	ListMentorActivities(ctx context.Context, email string) ([]dto.MentorActivityResponse, error)
	ListStudentActivities(ctx context.Context, email string) ([]dto.StudentActivityResponse, error)
}

type ledgerService struct {
	mentors           repository.MentorRepository
	students          repository.StudentRepository
	mentorActivities  repository.MentorActivityRepository
	studentActivities repository.StudentActivityRepository
	leaderboard       LeaderboardInvalidator
	publisher         LedgerPublisher
	validator         *validator.Validate
	sanitizer         *bluemonday.Policy
	logger            zerolog.Logger
}

// NewLedgerService constructs the activity ledger service.
func NewLedgerService(
	mentors repository.MentorRepository,
	students repository.StudentRepository,
	mentorActivities repository.MentorActivityRepository,
	studentActivities repository.StudentActivityRepository,
	leaderboard LeaderboardInvalidator,
	publisher LedgerPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) LedgerService {
	if publisher == nil {
		publisher = NopLedgerPublisher{}
	}
	return &ledgerService{
		mentors:           mentors,
		students:          students,
		mentorActivities:  mentorActivities,
		studentActivities: studentActivities,
		leaderboard:       leaderboard,
		publisher:         publisher,
		validator:         validate,
		sanitizer:         bluemonday.StrictPolicy(),
		logger:            logger.With().Str("component", "ledger_service").Logger(),
	}
}

func (s *ledgerService) LogMentorActivity(ctx context.Context, email string, req dto.MentorActivityRequest) (dto.MentorActivityResponse, error) {
	req.Name = s.clean(req.Name)
	req.Type = s.clean(req.Type)

	if err := s.validator.Struct(req); err != nil {
		return dto.MentorActivityResponse{}, err
	}
	if req.Hours <= 0 {
		return dto.MentorActivityResponse{}, invalid("hours must be a positive integer")
	}
	if req.Hours > models.MaxActivityHours {
		return dto.MentorActivityResponse{}, invalid("hours must not exceed %d", models.MaxActivityHours)
	}
	date, err := parseActivityDate(req.Date)
	if err != nil {
		return dto.MentorActivityResponse{}, err
	}

	email = models.NormalizeEmail(email)
	if _, err := s.mentors.GetByEmail(ctx, email); err != nil {
		return dto.MentorActivityResponse{}, principalError(err)
	}

	activity := models.MentorActivity{
		MentorEmail: email,
		Name:        req.Name,
		Type:        req.Type,
		Date:        datatypes.Date(date),
		Hours:       req.Hours,
		Points:      models.MentorPoints(req.Hours),
	}
	if err := s.mentorActivities.Create(ctx, &activity); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to log mentor activity")
		return dto.MentorActivityResponse{}, storageError("log mentor activity", err)
	}

	observability.ActivitiesLogged().WithLabelValues(models.RoleMentor.String()).Inc()
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
	publishLedgerEvent(ctx, s.publisher, s.logger, LedgerEvent{
		Type:    EventActivityLogged,
		Role:    models.RoleMentor.String(),
		Email:   email,
		EntryID: activity.ID,
		Points:  activity.Points,
	})

	return dto.NewMentorActivityResponse(activity), nil
}

func (s *ledgerService) LogStudentActivity(ctx context.Context, email string, req dto.StudentActivityRequest) (dto.StudentActivityResponse, error) {
	req.Name = s.clean(req.Name)
	req.Type = s.clean(req.Type)
	req.Remarks = s.clean(req.Remarks)

	if err := s.validator.Struct(req); err != nil {
		return dto.StudentActivityResponse{}, err
	}
	date, err := parseActivityDate(req.Date)
	if err != nil {
		return dto.StudentActivityResponse{}, err
	}

	email = models.NormalizeEmail(email)
	if _, err := s.students.GetByEmail(ctx, email); err != nil {
		return dto.StudentActivityResponse{}, principalError(err)
	}

	activity := models.StudentActivity{
		StudentEmail:   email,
		Name:           req.Name,
		Type:           req.Type,
		Date:           datatypes.Date(date),
		Status:         req.Status,
		HasCertificate: req.HasCertificate,
		Remarks:        req.Remarks,
	}
	if err := s.studentActivities.Create(ctx, &activity); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to log student activity")
		return dto.StudentActivityResponse{}, storageError("log student activity", err)
	}

	observability.ActivitiesLogged().WithLabelValues(models.RoleStudent.String()).Inc()
	publishLedgerEvent(ctx, s.publisher, s.logger, LedgerEvent{
		Type:    EventActivityLogged,
		Role:    models.RoleStudent.String(),
		Email:   email,
		EntryID: activity.ID,
	})

	return dto.NewStudentActivityResponse(activity), nil
}

func (s *ledgerService) ListMentorActivities(ctx context.Context, email string) ([]dto.MentorActivityResponse, error) {
	activities, err := s.mentorActivities.ListByMentor(ctx, models.NormalizeEmail(email), repository.MentorActivityFilter{})
	if err != nil {
		return nil, storageError("list mentor activities", err)
	}
	return dto.NewMentorActivityResponses(activities), nil
}

func (s *ledgerService) ListStudentActivities(ctx context.Context, email string) ([]dto.StudentActivityResponse, error) {
	activities, err := s.studentActivities.ListByStudent(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, storageError("list student activities", err)
	}
	return dto.NewStudentActivityResponses(activities), nil
}

func (s *ledgerService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

// parseActivityDate accepts a YYYY-MM-DD calendar date. time.Parse rejects
// out-of-range days such as 2023-02-30.
func parseActivityDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, invalid("date is required")
	}
	parsed, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, invalid("date %q is not a valid YYYY-MM-DD calendar date", value)
	}
	return parsed, nil
}

func principalError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPrincipalNotFound
	}
	return storageError("lookup principal", err)
}
