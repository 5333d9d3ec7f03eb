package dto

import (
	"time"

	"github.com/noah-isme/timebank-api/internal/models"
)

// RegisterRequest carries the registration form for either role.
type RegisterRequest struct {
	Role         string `json:"role" validate:"required,oneof=student mentor"`
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,max=72"`
	Department   string `json:"department" validate:"max=255"`
	Year         string `json:"year" validate:"max=32"`
	Skills       string `json:"skills" validate:"max=512"`
	Availability string `json:"availability" validate:"max=255"`
	Contact      string `json:"contact" validate:"max=64"`
}

// LoginRequest carries credentials for a single role.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=student mentor"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PrincipalResponse exposes a principal without its credentials.
type PrincipalResponse struct {
	Role       string            `json:"role"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Principal   PrincipalResponse `json:"principal"`
}

// NewPrincipalResponse maps a principal into its response payload.
func NewPrincipalResponse(p models.Principal) PrincipalResponse {
	attributes := make(map[string]string, len(p.Attributes))
	for key, value := range p.Attributes {
		attributes[key] = value
	}

	return PrincipalResponse{
		Role:       p.Role.String(),
		Email:      p.Email,
		Name:       p.Name,
		Attributes: attributes,
	}
}
