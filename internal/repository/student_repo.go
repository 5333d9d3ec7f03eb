package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/models"
)

// StudentRepository provides access to student principals.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
