package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/models"
)

// MentorActivityFilter narrows a mentor's ledger to a date window. Both
// bounds are inclusive and optional.
type MentorActivityFilter struct {
	From *time.Time
	To   *time.Time
}

// MentorActivityRepository persists the mentor points ledger.
type MentorActivityRepository interface {
	Create(ctx context.Context, activity *models.MentorActivity) error
	ListByMentor(ctx context.Context, email string, filter MentorActivityFilter) ([]models.MentorActivity, error)
	SumPoints(ctx context.Context, email string) (int64, error)
}

// StudentActivityRepository persists the student activity ledger.
type StudentActivityRepository interface {
	Create(ctx context.Context, activity *models.StudentActivity) error
	ListByStudent(ctx context.Context, email string) ([]models.StudentActivity, error)
}

type mentorActivityRepository struct {
	db *gorm.DB
}

// NewMentorActivityRepository constructs the mentor ledger repository.
func NewMentorActivityRepository(db *gorm.DB) MentorActivityRepository {
	return &mentorActivityRepository{db: db}
}

func (r *mentorActivityRepository) Create(ctx context.Context, activity *models.MentorActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *mentorActivityRepository) ListByMentor(ctx context.Context, email string, filter MentorActivityFilter) ([]models.MentorActivity, error) {
	query := r.db.WithContext(ctx).Where("mentor_email = ?", email)

	if filter.From != nil {
		query = query.Where("activity_date >= ?", datatypes.Date(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("activity_date <= ?", datatypes.Date(*filter.To))
	}

	var activities []models.MentorActivity
	if err := query.Order("activity_date DESC").Order("id DESC").Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *mentorActivityRepository) SumPoints(ctx context.Context, email string) (int64, error) {
	return sumEarned(r.db.WithContext(ctx), email)
}

type studentActivityRepository struct {
	db *gorm.DB
}

// NewStudentActivityRepository constructs the student ledger repository.
func NewStudentActivityRepository(db *gorm.DB) StudentActivityRepository {
	return &studentActivityRepository{db: db}
}

func (r *studentActivityRepository) Create(ctx context.Context, activity *models.StudentActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *studentActivityRepository) ListByStudent(ctx context.Context, email string) ([]models.StudentActivity, error) {
	var activities []models.StudentActivity
	err := r.db.WithContext(ctx).
		Where("student_email = ?", email).
		Order("activity_date DESC").
		Order("id DESC").
		Find(&activities).Error
	return activities, err
}

func sumEarned(db *gorm.DB, email string) (int64, error) {
	var total int64
	err := db.Model(&models.MentorActivity{}).
		Select("COALESCE(SUM(points), 0)").
		Where("mentor_email = ?", email).
		Scan(&total).Error
	return total, err
}

func sumRedeemed(db *gorm.DB, email string) (int64, error) {
	var total int64
	err := db.Model(&models.Redemption{}).
		Select("COALESCE(SUM(points_spent), 0)").
		Where("mentor_email = ?", email).
		Scan(&total).Error
	return total, err
}
