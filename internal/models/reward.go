package models

import "time"

// Reward is a catalog item that can be bought with points.
type Reward struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Cost      int       `gorm:"not null" json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Redemption debits points from a mentor. PointsSpent is the reward cost
// captured when the redemption was written.
type Redemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MentorEmail string    `gorm:"size:255;not null;index" json:"mentor_email"`
	RewardID    uint      `gorm:"not null;index" json:"reward_id"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardRow is the aggregate produced by the leaderboard query.
type LeaderboardRow struct {
	Email       string
	Name        string
	TotalHours  int64
	TotalPoints int64
}

// AllModels lists every table managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Student{},
		&Mentor{},
		&MentorActivity{},
		&StudentActivity{},
		&Reward{},
		&Redemption{},
	}
}
