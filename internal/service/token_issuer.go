package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/timebank-api/internal/models"
)

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal models.Principal) (string, time.Time, error)
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an HS256 token issuer. The subject is the principal's
// email and the role travels in the "role" claim.
func NewJWTIssuer(secret string, ttl time.Duration) TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &jwtIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *jwtIssuer) Issue(principal models.Principal) (string, time.Time, error) {
	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  principal.Email,
		"role": principal.Role.String(),
		"name": principal.Name,
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}
