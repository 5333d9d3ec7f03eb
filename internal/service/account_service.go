package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/repository"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// AccountService registers and authenticates students and mentors.
type AccountService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.PrincipalResponse, error)
	Authenticate(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, role models.Role, email string) (dto.PrincipalResponse, error)
}

type accountService struct {
	students   repository.StudentRepository
	mentors    repository.MentorRepository
	tokens     TokenIssuer
	validator  *validator.Validate
	bcryptCost int
	logger     zerolog.Logger
}

// NewAccountService constructs the accounts service.
func NewAccountService(students repository.StudentRepository, mentors repository.MentorRepository, tokens TokenIssuer, validate *validator.Validate, bcryptCost int, logger zerolog.Logger) AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &accountService{
		students:   students,
		mentors:    mentors,
		tokens:     tokens,
		validator:  validate,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "account_service").Logger(),
	}
}

func (s *accountService) Register(ctx context.Context, req dto.RegisterRequest) (dto.PrincipalResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	req.Name = strings.TrimSpace(req.Name)
	req.Email = models.NormalizeEmail(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return dto.PrincipalResponse{}, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return dto.PrincipalResponse{}, invalid("%v", err)
	}

	// validator counts runes; bcrypt limits bytes.
	if len(req.Password) > maxPasswordBytes {
		return dto.PrincipalResponse{}, invalid("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return dto.PrincipalResponse{}, invalid("password must be at most %d bytes", maxPasswordBytes)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return dto.PrincipalResponse{}, err
	}

	var principal models.Principal
	switch role {
	case models.RoleStudent:
		student := models.Student{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: string(hash),
			Department:   strings.TrimSpace(req.Department),
			Year:         strings.TrimSpace(req.Year),
			Contact:      strings.TrimSpace(req.Contact),
		}
		err = s.students.Create(ctx, &student)
		principal = student.Principal()
	case models.RoleMentor:
		mentor := models.Mentor{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: string(hash),
			Skills:       strings.TrimSpace(req.Skills),
			Availability: strings.TrimSpace(req.Availability),
			Contact:      strings.TrimSpace(req.Contact),
		}
		err = s.mentors.Create(ctx, &mentor)
		principal = mentor.Principal()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.PrincipalResponse{}, ErrDuplicateEmail
		}
		s.logger.Error().Err(err).Str("role", role.String()).Msg("failed to register principal")
		return dto.PrincipalResponse{}, storageError("register", err)
	}

	s.logger.Info().Str("role", role.String()).Str("email", principal.Email).Msg("principal registered")
	return dto.NewPrincipalResponse(principal), nil
}

func (s *accountService) Authenticate(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	req.Email = models.NormalizeEmail(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return dto.AuthResponse{}, invalid("%v", err)
	}

	principal, err := s.lookup(ctx, role, req.Email)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Principal:   dto.NewPrincipalResponse(principal),
	}, nil
}

func (s *accountService) Profile(ctx context.Context, role models.Role, email string) (dto.PrincipalResponse, error) {
	principal, err := s.lookup(ctx, role, models.NormalizeEmail(email))
	if err != nil {
		return dto.PrincipalResponse{}, err
	}
	return dto.NewPrincipalResponse(principal), nil
}

// lookup reads the principal from the table owned by role.
func (s *accountService) lookup(ctx context.Context, role models.Role, email string) (models.Principal, error) {
	var (
		principal models.Principal
		err       error
	)

	switch role {
	case models.RoleStudent:
		var student models.Student
		student, err = s.students.GetByEmail(ctx, email)
		principal = student.Principal()
	case models.RoleMentor:
		var mentor models.Mentor
		mentor, err = s.mentors.GetByEmail(ctx, email)
		principal = mentor.Principal()
	default:
		return models.Principal{}, invalid("unknown role %q", role)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Principal{}, ErrPrincipalNotFound
		}
		return models.Principal{}, storageError("lookup principal", err)
	}

	return principal, nil
}
