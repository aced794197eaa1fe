package scheduler

import (
	"context"
	"testing"

	"scooter-sharing-backend/internal/config"
	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReservations struct{}

func (stubReservations) Reserve(context.Context, int32, int32) (*domain.Reservation, error) {
	return nil, nil
}
func (stubReservations) ListReservations(context.Context, int32) ([]domain.Reservation, error) {
	return nil, nil
}
func (stubReservations) SweepExpired(context.Context) (int, error) { return 0, nil }

func runnerWithSchedule(schedule string) *jobs.JobRunner {
	cfg := &config.Config{}
	cfg.Scheduler.ExpireReservations = schedule
	cfg.Scheduler.JobTimeoutSeconds = 10
	return jobs.NewJobRunner(&jobs.Services{Reservation: stubReservations{}}, cfg)
}

func TestNewScheduler_RegistersExpiryJob(t *testing.T) {
	s, err := NewScheduler(runnerWithSchedule("0 * * * * *"))
	require.NoError(t, err)

	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 1)
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler(runnerWithSchedule("every minute"))

	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler(runnerWithSchedule("0 0 * * * *"))
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
