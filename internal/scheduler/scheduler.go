package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const reportJobName = "export_monthly_reports"

// ReportExporter writes every mentor's report for a period into a directory.
type ReportExporter interface {
	ExportToDir(ctx context.Context, dir, period string) (int, error)
}

// ReportScheduler runs the periodic report export.
type ReportScheduler struct {
	cron     *cron.Cron
	exporter ReportExporter
	schedule string
	dir      string
	period   string
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewReportScheduler prepares a scheduler using a standard five-field cron
// expression. Nothing runs until Start is called.
func NewReportScheduler(exporter ReportExporter, schedule, dir string, logger zerolog.Logger) *ReportScheduler {
	return &ReportScheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		exporter: exporter,
		schedule: schedule,
		dir:      dir,
		period:   "monthly",
		timeout:  5 * time.Minute,
		logger:   logger.With().Str("component", "report_scheduler").Logger(),
	}
}

// Start registers the export job and starts the cron loop.
func (s *ReportScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("register %s: %w", reportJobName, err)
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", s.schedule).Str("dir", s.dir).Msg("report scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running export to finish.
func (s *ReportScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("report scheduler stopped")
}

// RunOnce performs one export immediately.
func (s *ReportScheduler) RunOnce(ctx context.Context) (int, error) {
	started := time.Now()
	s.logger.Info().Str("job", reportJobName).Msg("job started")

	written, err := s.exporter.ExportToDir(ctx, s.dir, s.period)
	if err != nil {
		s.logger.Error().Err(err).Str("job", reportJobName).Int("reports", written).Msg("job failed")
		return written, err
	}

	s.logger.Info().
		Str("job", reportJobName).
		Int("reports", written).
		Dur("duration", time.Since(started)).
		Msg("job completed")
	return written, nil
}

func (s *ReportScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, _ = s.RunOnce(ctx)
}
