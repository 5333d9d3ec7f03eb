package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type exporterStub struct {
	dir     string
	period  string
	written int
	err     error
	calls   int
}

func (e *exporterStub) ExportToDir(_ context.Context, dir, period string) (int, error) {
	e.calls++
	e.dir = dir
	e.period = period
	return e.written, e.err
}

func TestReportSchedulerRunOnce(t *testing.T) {
	exporter := &exporterStub{written: 3}
	s := NewReportScheduler(exporter, "0 0 1 * *", "/tmp/reports", zerolog.New(io.Discard))

	written, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, written)
	require.Equal(t, "/tmp/reports", exporter.dir)
	require.Equal(t, "monthly", exporter.period)
}

func TestReportSchedulerRunOncePropagatesError(t *testing.T) {
	exporter := &exporterStub{err: errors.New("disk full")}
	s := NewReportScheduler(exporter, "0 0 1 * *", "/tmp/reports", zerolog.New(io.Discard))

	_, err := s.RunOnce(context.Background())
	require.EqualError(t, err, "disk full")
}

func TestReportSchedulerStartStop(t *testing.T) {
	s := NewReportScheduler(&exporterStub{}, "0 0 1 * *", t.TempDir(), zerolog.New(io.Discard))
	require.NoError(t, s.Start())
	require.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestReportSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewReportScheduler(&exporterStub{}, "every month", t.TempDir(), zerolog.New(io.Discard))
	require.Error(t, s.Start())
}
