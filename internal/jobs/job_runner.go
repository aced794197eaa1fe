package jobs

import (
	"fmt"

	"scooter-sharing-backend/internal/config"
	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/service"
)

const JobExpireReservations = "expire-reservations"

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reservation service.ReservationService
}

func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// RunByName runs a single job synchronously, for -run-once invocations.
func (jr *JobRunner) RunByName(name string) error {
	switch name {
	case JobExpireReservations:
		jr.ExpireReservations()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
	return nil
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
