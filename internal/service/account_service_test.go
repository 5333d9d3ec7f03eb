package service

import (
	"context"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
)

func TestAccountServiceRegisterAuthenticateRoundTrip(t *testing.T) {
	f := newTimebankFixture(t)
	ctx := context.Background()

	registered, err := f.accounts.Register(ctx, dto.RegisterRequest{
		Role:     "Mentor",
		Name:     "  Ana Lee ",
		Email:    "Ana@Example.com",
		Password: "correct horse",
		Skills:   "math",
	})
	require.NoError(t, err)
	require.Equal(t, "mentor", registered.Role)
	require.Equal(t, "ana@example.com", registered.Email)
	require.Equal(t, "Ana Lee", registered.Name)
	require.Equal(t, "math", registered.Attributes["skills"])

	var stored models.Mentor
	require.NoError(t, f.db.Where("email = ?", "ana@example.com").First(&stored).Error)
	require.NotEqual(t, "correct horse", stored.PasswordHash)

	auth, err := f.accounts.Authenticate(ctx, dto.LoginRequest{Role: "mentor", Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, "Bearer", auth.TokenType)
	require.Equal(t, "Ana Lee", auth.Principal.Name)

	parsed, err := jwt.Parse(auth.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "ana@example.com", claims["sub"])
	require.Equal(t, "mentor", claims["role"])
}

func TestAccountServiceRejectsBadCredentials(t *testing.T) {
	f := newTimebankFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "sam@example.com", "Sam")

	_, err := f.accounts.Authenticate(ctx, dto.LoginRequest{Role: "student", Email: "sam@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.accounts.Authenticate(ctx, dto.LoginRequest{Role: "student", Email: "nobody@example.com", Password: "secret-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// registered as a student only
	_, err = f.accounts.Authenticate(ctx, dto.LoginRequest{Role: "mentor", Email: "sam@example.com", Password: "secret-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountServiceDuplicateEmailPerRole(t *testing.T) {
	f := newTimebankFixture(t)
	ctx := context.Background()
	f.registerMentor(t, "dup@example.com", "First")

	_, err := f.accounts.Register(ctx, dto.RegisterRequest{Role: "mentor", Name: "Second", Email: "DUP@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = f.accounts.Register(ctx, dto.RegisterRequest{Role: "student", Name: "Student", Email: "dup@example.com", Password: "x"})
	require.NoError(t, err)
}

func TestAccountServiceValidation(t *testing.T) {
	f := newTimebankFixture(t)
	ctx := context.Background()

	cases := []dto.RegisterRequest{
		{Role: "admin", Name: "A", Email: "a@example.com", Password: "x"},
		{Role: "mentor", Name: "", Email: "a@example.com", Password: "x"},
		{Role: "mentor", Name: "A", Email: "not-an-email", Password: "x"},
		{Role: "mentor", Name: "A", Email: "a@example.com", Password: ""},
		{Role: "mentor", Name: "A", Email: "a@example.com", Password: strings.Repeat("é", 60)},
	}
	for _, req := range cases {
		_, err := f.accounts.Register(ctx, req)
		require.Error(t, err)
		require.True(t, IsValidationError(err), "expected validation error for %+v", req)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Mentor{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAccountServiceProfile(t *testing.T) {
	f := newTimebankFixture(t)
	f.registerStudent(t, "sam@example.com", "Sam")

	profile, err := f.accounts.Profile(context.Background(), models.RoleStudent, "sam@example.com")
	require.NoError(t, err)
	require.Equal(t, "Sam", profile.Name)

	_, err = f.accounts.Profile(context.Background(), models.RoleMentor, "sam@example.com")
	require.ErrorIs(t, err, ErrPrincipalNotFound)
}
