package models

import (
	"fmt"
	"strings"
	"time"
)

// Role distinguishes the two principal kinds. Each role owns its own table.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
)

// ParseRole normalises a role name coming from a request or token.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleMentor:
		return RoleMentor, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

func (r Role) String() string {
	return string(r)
}

// Student is a principal that logs activities without earning points.
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Department   string    `gorm:"size:255" json:"department"`
	Year         string    `gorm:"size:32" json:"year"`
	Contact      string    `gorm:"size:64" json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Mentor is a principal whose activities accrue redeemable points.
type Mentor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Skills       string    `gorm:"size:512" json:"skills"`
	Availability string    `gorm:"size:255" json:"availability"`
	Contact      string    `gorm:"size:64" json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the role-independent view of a registered identity.
type Principal struct {
	Role         Role
	Email        string
	Name         string
	PasswordHash string
	Attributes   map[string]string
}

// Principal projects the student row onto the shared identity view.
func (s Student) Principal() Principal {
	return Principal{
		Role:         RoleStudent,
		Email:        s.Email,
		Name:         s.Name,
		PasswordHash: s.PasswordHash,
		Attributes: map[string]string{
			"department": s.Department,
			"year":       s.Year,
			"contact":    s.Contact,
		},
	}
}

// Principal projects the mentor row onto the shared identity view.
func (m Mentor) Principal() Principal {
	return Principal{
		Role:         RoleMentor,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Attributes: map[string]string{
			"skills":       m.Skills,
			"availability": m.Availability,
			"contact":      m.Contact,
		},
	}
}

// NormalizeEmail is applied to every email before it reaches the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
