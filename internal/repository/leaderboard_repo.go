package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/models"
)

// LeaderboardRepository aggregates mentor totals.
type LeaderboardRepository interface {
	TopMentors(ctx context.Context) ([]models.LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository constructs the leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// TopMentors ranks mentors by total points. The inner join leaves out mentors
// that have never logged an activity; ties fall back to name, then email.
func (r *leaderboardRepository) TopMentors(ctx context.Context) ([]models.LeaderboardRow, error) {
	var rows []models.LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("mentors AS m").
		Select("m.email AS email, m.name AS name, SUM(ma.hours) AS total_hours, SUM(ma.points) AS total_points").
		Joins("JOIN mentor_activities AS ma ON ma.mentor_email = m.email").
		Group("m.email, m.name").
		Order("total_points DESC").
		Order("m.name ASC").
		Order("m.email ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
