package models

import (
	"time"

	"gorm.io/datatypes"
)

// PointsPerHour is the multiplier applied when a mentor activity is written.
// Stored activities keep the points computed at that moment.
const PointsPerHour = 10

// MaxActivityHours caps a single dated activity at one calendar day.
const MaxActivityHours = 24

// Student activity states.
const (
	StudentActivityPending   = "Pending"
	StudentActivityCompleted = "Completed"
)

// MentorActivity is an append-only ledger entry that earns points.
type MentorActivity struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	MentorEmail string         `gorm:"size:255;not null;index:idx_mentor_activity_date,priority:1" json:"mentor_email"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Type        string         `gorm:"size:128;not null" json:"type"`
	Date        datatypes.Date `gorm:"column:activity_date;not null;index:idx_mentor_activity_date,priority:2" json:"date"`
	Hours       int            `gorm:"not null" json:"hours"`
	Points      int            `gorm:"not null" json:"points"`
	CreatedAt   time.Time      `json:"created_at"`
}

// StudentActivity is an append-only ledger entry without points.
type StudentActivity struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StudentEmail   string         `gorm:"size:255;not null;index" json:"student_email"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Type           string         `gorm:"size:128;not null" json:"type"`
	Date           datatypes.Date `gorm:"column:activity_date;not null" json:"date"`
	Status         string         `gorm:"size:32;not null" json:"status"`
	HasCertificate bool           `gorm:"not null;default:false" json:"has_certificate"`
	Remarks        string         `gorm:"type:text" json:"remarks"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MentorPoints computes the points earned for a number of volunteered hours.
func MentorPoints(hours int) int {
	return hours * PointsPerHour
}
