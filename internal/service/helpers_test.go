package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []LedgerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LedgerEvent(nil), p.events...)
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

// timebankFixture wires every service against one database.
type timebankFixture struct {
	db          *gorm.DB
	accounts    AccountService
	ledger      LedgerService
	points      PointsService
	rewards     RewardService
	reports     *reportService
	publisher   *recordingPublisher
	invalidator *countingInvalidator
}

func newTimebankFixture(t *testing.T) timebankFixture {
	t.Helper()

	db := setupServiceDB(t)
	validate := validator.New()
	logger := testLogger()

	students := repository.NewStudentRepository(db)
	mentors := repository.NewMentorRepository(db)
	mentorActivities := repository.NewMentorActivityRepository(db)
	studentActivities := repository.NewStudentActivityRepository(db)
	rewardsRepo := repository.NewRewardRepository(db)
	redemptions := repository.NewRedemptionRepository(db)

	publisher := &recordingPublisher{}
	invalidator := &countingInvalidator{}

	return timebankFixture{
		db:          db,
		accounts:    NewAccountService(students, mentors, NewJWTIssuer("test-secret", 0), validate, bcrypt.MinCost, logger),
		ledger:      NewLedgerService(mentors, students, mentorActivities, studentActivities, invalidator, publisher, validate, logger),
		points:      NewPointsService(mentors, mentorActivities, redemptions, rewardsRepo, publisher, validate, logger),
		rewards:     NewRewardService(rewardsRepo, validate, "seed-token", logger),
		reports:     NewReportService(mentors, mentorActivities, logger).(*reportService),
		publisher:   publisher,
		invalidator: invalidator,
	}
}

func (f timebankFixture) registerMentor(t *testing.T, email, name string) {
	t.Helper()
	_, err := f.accounts.Register(context.Background(), dto.RegisterRequest{
		Role: "mentor", Name: name, Email: email, Password: "secret-pass",
	})
	require.NoError(t, err)
}

func (f timebankFixture) registerStudent(t *testing.T, email, name string) {
	t.Helper()
	_, err := f.accounts.Register(context.Background(), dto.RegisterRequest{
		Role: "student", Name: name, Email: email, Password: "secret-pass",
	})
	require.NoError(t, err)
}

func (f timebankFixture) logHours(t *testing.T, email, date string, hours int) dto.MentorActivityResponse {
	t.Helper()
	resp, err := f.ledger.LogMentorActivity(context.Background(), email, dto.MentorActivityRequest{
		Name: "Tutoring", Type: "Academic", Date: date, Hours: hours,
	})
	require.NoError(t, err)
	return resp
}

func (f timebankFixture) seedReward(t *testing.T, name string, cost int) uint {
	t.Helper()
	_, err := f.rewards.SeedRewards(context.Background(), "seed-token", []dto.RewardSeedItem{{Name: name, Cost: cost}})
	require.NoError(t, err)

	var reward models.Reward
	require.NoError(t, f.db.Where("name = ?", name).First(&reward).Error)
	return reward.ID
}
