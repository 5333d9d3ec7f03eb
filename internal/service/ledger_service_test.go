package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
)

func TestLedgerServiceMentorPointsAreTenPerHour(t *testing.T) {
	f := newTimebankFixture(t)
	f.registerMentor(t, "ana@example.com", "Ana Lee")

	for _, hours := range []int{1, 3, 7, 24} {
		resp := f.logHours(t, "ana@example.com", "2024-03-01", hours)
		require.Equal(t, hours, resp.Hours)
		require.Equal(t, hours*10, resp.Points)
		require.Equal(t, "2024-03-01", resp.Date)
	}

	require.Equal(t, 4, f.invalidator.calls)
	events := f.publisher.Events()
	require.Len(t, events, 4)
	require.Equal(t, EventActivityLogged, events[0].Type)
	require.Equal(t, "mentor", events[0].Role)
	require.Equal(t, 10, events[0].Points)
}

func TestLedgerServiceRejectsInvalidMentorActivity(t *testing.T) {
	f := newTimebankFixture(t)
	f.registerMentor(t, "ana@example.com", "Ana Lee")
	ctx := context.Background()

	cases := []dto.MentorActivityRequest{
		{Name: "Tutoring", Type: "Academic", Date: "2024-03-01", Hours: 0},
		{Name: "Tutoring", Type: "Academic", Date: "2024-03-01", Hours: -2},
		{Name: "Tutoring", Type: "Academic", Date: "2024-03-01", Hours: 25},
		{Name: "Tutoring", Type: "Academic", Date: "2024-03-01", Hours: math.MaxInt/models.PointsPerHour + 1},
		{Name: "Tutoring", Type: "Academic", Date: "2023-02-30", Hours: 2},
		{Name: "Tutoring", Type: "Academic", Date: "03/01/2024", Hours: 2},
		{Name: "", Type: "Academic", Date: "2024-03-01", Hours: 2},
		{Name: "<script></script>", Type: "Academic", Date: "2024-03-01", Hours: 2},
	}
	for _, req := range cases {
		_, err := f.ledger.LogMentorActivity(ctx, "ana@example.com", req)
		require.Error(t, err)
		require.True(t, IsValidationError(err), "expected validation error for %+v", req)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.MentorActivity{}).Count(&count).Error)
	require.Zero(t, count)
	require.Zero(t, f.invalidator.calls)
}

func TestLedgerServiceUnknownPrincipal(t *testing.T) {
	f := newTimebankFixture(t)
	ctx := context.Background()

	_, err := f.ledger.LogMentorActivity(ctx, "ghost@example.com", dto.MentorActivityRequest{
		Name: "Tutoring", Type: "Academic", Date: "2024-03-01", Hours: 2,
	})
	require.ErrorIs(t, err, ErrPrincipalNotFound)

	_, err = f.ledger.LogStudentActivity(ctx, "ghost@example.com", dto.StudentActivityRequest{
		Name: "Hackathon", Type: "Tech", Date: "2024-03-01", Status: "Pending",
	})
	require.ErrorIs(t, err, ErrPrincipalNotFound)
}

func TestLedgerServiceListsNewestFirst(t *testing.T) {
	f := newTimebankFixture(t)
	f.registerMentor(t, "ana@example.com", "Ana Lee")
	f.logHours(t, "ana@example.com", "2024-01-05", 1)
	f.logHours(t, "ana@example.com", "2024-02-05", 2)

	activities, err := f.ledger.ListMentorActivities(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, "2024-02-05", activities[0].Date)
	require.Equal(t, "2024-01-05", activities[1].Date)
}

func TestLedgerServiceStudentActivities(t *testing.T) {
	f := newTimebankFixture(t)
	f.registerStudent(t, "sam@example.com", "Sam")
	ctx := context.Background()

	resp, err := f.ledger.LogStudentActivity(ctx, "sam@example.com", dto.StudentActivityRequest{
		Name:           "Beach <b>cleanup</b>",
		Type:           "Community",
		Date:           "2024-04-20",
		Status:         "Completed",
		HasCertificate: true,
		Remarks:        "  great day ",
	})
	require.NoError(t, err)
	require.Equal(t, "Beach cleanup", resp.Name)
	require.Equal(t, "great day", resp.Remarks)
	require.True(t, resp.HasCertificate)

	_, err = f.ledger.LogStudentActivity(ctx, "sam@example.com", dto.StudentActivityRequest{
		Name: "Hackathon", Type: "Tech", Date: "2024-04-21", Status: "Done",
	})
	require.True(t, IsValidationError(err))

	list, err := f.ledger.ListStudentActivities(ctx, "sam@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Zero(t, f.invalidator.calls)
}
