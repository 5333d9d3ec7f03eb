package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/observability"
	"github.com/noah-isme/timebank-api/internal/repository"
)

// Report periods.
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// monthlyWindowDays is how far back a monthly report reaches.
const monthlyWindowDays = 30

var reportHeader = []string{"Date", "Activity Name", "Activity Type", "Hours", "Points"}

// ReportRow is one mentor activity inside a report.
type ReportRow struct {
	Date   time.Time
	Name   string
	Type   string
	Hours  int
	Points int
}

// Report is a mentor's ledger restricted to a period.
type Report struct {
	MentorName  string
	Period      string
	Rows        []ReportRow
	TotalHours  int64
	TotalPoints int64
}

// Filename names the CSV download, e.g. Ana_Lee_monthly_Report.csv. The
// result is always a single path element.
func (r Report) Filename() string {
	return fmt.Sprintf("%s_%s_Report.csv", safeFilePart(r.MentorName), r.Period)
}

// safeFilePart keeps letters, digits, dashes and inner dots. Everything else,
// path separators included, becomes an underscore.
func safeFilePart(value string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(value))

	mapped = strings.TrimLeft(mapped, ".")
	if mapped == "" {
		return "mentor"
	}
	return mapped
}

// WriteCSV writes the header, one line per activity, then the totals.
func (r Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Date.Format(dto.DateLayout),
			row.Name,
			row.Type,
			strconv.Itoa(row.Hours),
			strconv.Itoa(row.Points),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"Total Hours", strconv.FormatInt(r.TotalHours, 10)}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Total Points", strconv.FormatInt(r.TotalPoints, 10)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// ReportService builds CSV reports from the mentor ledger.
type ReportService interface {
	Generate(ctx context.Context, email, period string) (Report, error)
	ExportToDir(ctx context.Context, dir, period string) (int, error)
}

type reportService struct {
	mentors    repository.MentorRepository
	activities repository.MentorActivityRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReportService constructs the reporting service.
func NewReportService(mentors repository.MentorRepository, activities repository.MentorActivityRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		mentors:    mentors,
		activities: activities,
		logger:     logger.With().Str("component", "report_service").Logger(),
		now:        time.Now,
	}
}

func (s *reportService) Generate(ctx context.Context, email, period string) (Report, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	filter, err := s.window(period)
	if err != nil {
		return Report{}, err
	}

	email = models.NormalizeEmail(email)
	mentor, err := s.mentors.GetByEmail(ctx, email)
	if err != nil {
		return Report{}, principalError(err)
	}

	return s.build(ctx, mentor, period, filter)
}

func (s *reportService) ExportToDir(ctx context.Context, dir, period string) (int, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	filter, err := s.window(period)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create report dir: %w", err)
	}

	mentors, err := s.mentors.List(ctx)
	if err != nil {
		return 0, storageError("list mentors", err)
	}

	written := 0
	var failures []error
	for _, mentor := range mentors {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		report, err := s.build(ctx, mentor, period, filter)
		if err != nil {
			return written, err
		}
		if err := writeReportFile(filepath.Join(dir, report.Filename()), report); err != nil {
			s.logger.Warn().Err(err).Str("email", mentor.Email).Msg("skipping mentor report")
			failures = append(failures, fmt.Errorf("%s: %w", mentor.Email, err))
			continue
		}
		written++
	}

	s.logger.Info().Str("period", period).Str("dir", dir).Int("reports", written).Msg("reports exported")
	return written, errors.Join(failures...)
}

func (s *reportService) build(ctx context.Context, mentor models.Mentor, period string, filter repository.MentorActivityFilter) (Report, error) {
	activities, err := s.activities.ListByMentor(ctx, mentor.Email, filter)
	if err != nil {
		return Report{}, storageError("list report activities", err)
	}

	report := Report{
		MentorName: mentor.Name,
		Period:     period,
		Rows:       make([]ReportRow, 0, len(activities)),
	}
	for _, activity := range activities {
		report.Rows = append(report.Rows, ReportRow{
			Date:   time.Time(activity.Date),
			Name:   activity.Name,
			Type:   activity.Type,
			Hours:  activity.Hours,
			Points: activity.Points,
		})
		report.TotalHours += int64(activity.Hours)
		report.TotalPoints += int64(activity.Points)
	}

	observability.ReportsGenerated().WithLabelValues(period).Inc()
	return report, nil
}

// window returns the inclusive date range for a period. Monthly has no
// upper bound so future-dated entries are still listed.
func (s *reportService) window(period string) (repository.MentorActivityFilter, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodMonthly:
		from := today.AddDate(0, 0, -monthlyWindowDays)
		return repository.MentorActivityFilter{From: &from}, nil
	case PeriodYearly:
		from := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return repository.MentorActivityFilter{From: &from, To: &to}, nil
	default:
		return repository.MentorActivityFilter{}, ErrInvalidPeriod
	}
}

func writeReportFile(path string, report Report) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return report.WriteCSV(file)
}
