package jobs

import (
	"context"

	"scooter-sharing-backend/internal/logger"
)

// ExpireReservations releases scooters held by reservations past their expiry.
// The sweep is idempotent so overlapping or repeated runs are harmless.
func (jr *JobRunner) ExpireReservations() {
	jr.runWithRecovery("ExpireReservations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.config.Scheduler.JobTimeout())
		defer cancel()

		count, err := jr.services.Reservation.SweepExpired(ctx)
		if err != nil {
			logger.Error("Failed to expire reservations", "error", err)
			return
		}
		logger.Info("Expired reservations", "count", count)
	})
}
