package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/models"
)

// MentorRepository provides access to mentor principals.
type MentorRepository interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByEmail(ctx context.Context, email string) (models.Mentor, error)
	List(ctx context.Context) ([]models.Mentor, error)
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository constructs a mentor repository.
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepository) GetByEmail(ctx context.Context, email string) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&mentor).Error; err != nil {
		return models.Mentor{}, err
	}

	return mentor, nil
}

func (r *mentorRepository) List(ctx context.Context) ([]models.Mentor, error) {
	var mentors []models.Mentor
	err := r.db.WithContext(ctx).Order("email ASC").Find(&mentors).Error
	return mentors, err
}
