package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/lock"
	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/metrics"
	"scooter-sharing-backend/internal/repository"
)

type reservationService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	locker   lock.Locker
	settings Settings
	now      func() time.Time
}

func NewReservationService(repos repository.Repositories, tx repository.Transactor, locker lock.Locker, settings Settings) ReservationService {
	return &reservationService{
		repos:    repos,
		tx:       tx,
		locker:   locker,
		settings: settings.withDefaults(),
		now:      time.Now,
	}
}

func (s *reservationService) Reserve(ctx context.Context, scooterID, userID int32) (res *domain.Reservation, err error) {
	logger.EnterMethod("reservationService.Reserve", "scooterID", scooterID, "userID", userID)
	defer func(start time.Time) { metrics.ObserveOperation("reserve", start, err) }(time.Now())

	err = lock.Scope(ctx, s.locker, lock.ReserveKey(userID, scooterID), s.settings.LockTTL, func(acquired bool) error {
		if !acquired {
			return fmt.Errorf("%w: reservation of scooter %d already in progress", domain.ErrTooManyRequests, scooterID)
		}
		return s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			scooter, err := repos.Scooters.GetForUpdate(ctx, scooterID)
			if err != nil {
				return err
			}
			if scooter.Status != domain.ScooterStatusAvailable {
				return fmt.Errorf("%w: scooter %d is %s", domain.ErrNotAvailable, scooterID, scooter.Status)
			}

			previous, err := repos.Reservations.ListActiveByUser(ctx, userID)
			if err != nil {
				return err
			}
			for _, prev := range previous {
				if err := s.supersede(ctx, repos, prev); err != nil {
					return err
				}
			}

			res = domain.NewReservation(scooterID, userID, s.now(), s.settings.ReservationLifetime)
			if err := repos.Reservations.Create(ctx, res); err != nil {
				return err
			}
			return repos.Scooters.SetStatus(ctx, scooterID, domain.ScooterStatusReserved)
		})
	})
	if err != nil {
		logger.ExitMethodWithError("reservationService.Reserve", err, "scooterID", scooterID, "userID", userID)
		return nil, err
	}
	logger.ExitMethod("reservationService.Reserve", "reservationID", res.ID, "expiresAt", res.ExpiresAt)
	return res, nil
}

// supersede ends a user's earlier reservation and frees its scooter.
// The scooter row is locked before the reservation row.
func (s *reservationService) supersede(ctx context.Context, repos repository.Repositories, prev domain.Reservation) error {
	scooter, err := repos.Scooters.GetForUpdate(ctx, prev.ScooterID)
	if err != nil {
		return err
	}
	current, err := repos.Reservations.GetForUpdate(ctx, prev.ID)
	if err != nil {
		return err
	}
	if !current.IsActive {
		return nil
	}
	if _, err := repos.Reservations.Deactivate(ctx, prev.ID); err != nil {
		return err
	}
	if scooter.Status == domain.ScooterStatusReserved {
		if err := repos.Scooters.SetStatus(ctx, scooter.ID, domain.ScooterStatusAvailable); err != nil {
			return err
		}
	}
	logger.Debug("Superseded reservation", "reservationID", prev.ID, "scooterID", prev.ScooterID)
	return nil
}

func (s *reservationService) ListReservations(ctx context.Context, userID int32) ([]domain.Reservation, error) {
	return s.repos.Reservations.ListActiveByUser(ctx, userID)
}

func (s *reservationService) SweepExpired(ctx context.Context) (int, error) {
	logger.EnterMethod("reservationService.SweepExpired")
	now := s.now()

	expired, err := s.repos.Reservations.ListExpired(ctx, now)
	if err != nil {
		logger.ExitMethodWithError("reservationService.SweepExpired", err)
		return 0, err
	}

	count := 0
	for _, res := range expired {
		if ctx.Err() != nil {
			break
		}
		changed, err := s.expire(ctx, res, now)
		if err != nil {
			logger.Error("Failed to expire reservation", "reservationID", res.ID, "scooterID", res.ScooterID, "error", err)
			continue
		}
		if changed {
			count++
		}
	}

	metrics.ReservationsExpired(count)
	logger.ExitMethod("reservationService.SweepExpired", "candidates", len(expired), "expired", count)
	return count, ctx.Err()
}

func (s *reservationService) expire(ctx context.Context, res domain.Reservation, now time.Time) (bool, error) {
	changed := false
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		scooter, err := repos.Scooters.GetForUpdate(ctx, res.ScooterID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		current, err := repos.Reservations.GetForUpdate(ctx, res.ID)
		if err != nil {
			return err
		}
		if !current.IsActive || !current.IsExpired(now) {
			return nil
		}
		changed, err = repos.Reservations.Deactivate(ctx, res.ID)
		if err != nil || !changed {
			return err
		}
		if scooter != nil && scooter.Status == domain.ScooterStatusReserved {
			return repos.Scooters.SetStatus(ctx, scooter.ID, domain.ScooterStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
