package dto

import (
	"time"

	"github.com/noah-isme/timebank-api/internal/models"
)

// DateLayout is the calendar date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// MentorActivityRequest logs volunteer hours for a mentor.
type MentorActivityRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Type  string `json:"type" validate:"required,max=128"`
	Date  string `json:"date" validate:"required"`
	Hours int    `json:"hours" validate:"max=24"`
}

// StudentActivityRequest logs an activity for a student.
type StudentActivityRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Type           string `json:"type" validate:"required,max=128"`
	Date           string `json:"date" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=Pending Completed"`
	HasCertificate bool   `json:"has_certificate"`
	Remarks        string `json:"remarks" validate:"max=2000"`
}

// MentorActivityResponse describes a mentor ledger entry.
type MentorActivityResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Hours     int       `json:"hours"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentActivityResponse describes a student ledger entry.
type StudentActivityResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Date           string    `json:"date"`
	Status         string    `json:"status"`
	HasCertificate bool      `json:"has_certificate"`
	Remarks        string    `json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMentorActivityResponse maps the model into its response payload.
func NewMentorActivityResponse(activity models.MentorActivity) MentorActivityResponse {
	return MentorActivityResponse{
		ID:        activity.ID,
		Name:      activity.Name,
		Type:      activity.Type,
		Date:      time.Time(activity.Date).Format(DateLayout),
		Hours:     activity.Hours,
		Points:    activity.Points,
		CreatedAt: activity.CreatedAt,
	}
}

// NewMentorActivityResponses maps a slice of mentor activities.
func NewMentorActivityResponses(activities []models.MentorActivity) []MentorActivityResponse {
	responses := make([]MentorActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewMentorActivityResponse(activity))
	}
	return responses
}

// NewStudentActivityResponse maps the model into its response payload.
func NewStudentActivityResponse(activity models.StudentActivity) StudentActivityResponse {
	return StudentActivityResponse{
		ID:             activity.ID,
		Name:           activity.Name,
		Type:           activity.Type,
		Date:           time.Time(activity.Date).Format(DateLayout),
		Status:         activity.Status,
		HasCertificate: activity.HasCertificate,
		Remarks:        activity.Remarks,
		CreatedAt:      activity.CreatedAt,
	}
}

// NewStudentActivityResponses maps a slice of student activities.
func NewStudentActivityResponses(activities []models.StudentActivity) []StudentActivityResponse {
	responses := make([]StudentActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewStudentActivityResponse(activity))
	}
	return responses
}
