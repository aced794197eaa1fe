package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/gateway"
	"scooter-sharing-backend/internal/lock"
	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/metrics"
	"scooter-sharing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type rentalService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	locker   lock.Locker
	payments PaymentService
	gw       gateway.Gateway
	settings Settings
	now      func() time.Time
}

func NewRentalService(
	repos repository.Repositories,
	tx repository.Transactor,
	locker lock.Locker,
	payments PaymentService,
	gw gateway.Gateway,
	settings Settings,
) RentalService {
	return &rentalService{
		repos:    repos,
		tx:       tx,
		locker:   locker,
		payments: payments,
		gw:       gw,
		settings: settings.withDefaults(),
		now:      time.Now,
	}
}

func (s *rentalService) StartRental(ctx context.Context, scooterID, userID int32) (rental *domain.Rental, payment *domain.Payment, err error) {
	logger.EnterMethod("rentalService.StartRental", "scooterID", scooterID, "userID", userID)
	defer func(start time.Time) { metrics.ObserveOperation("start_rental", start, err) }(time.Now())

	err = lock.Scope(ctx, s.locker, lock.StartRentalKey(userID, scooterID), s.settings.LockTTL, func(acquired bool) error {
		if !acquired {
			return fmt.Errorf("%w: rental of scooter %d already starting", domain.ErrTooManyRequests, scooterID)
		}
		return s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			rental, payment = nil, nil

			scooter, err := repos.Scooters.GetForUpdate(ctx, scooterID)
			if err != nil {
				return err
			}

			var consumed *domain.Reservation
			switch scooter.Status {
			case domain.ScooterStatusAvailable:
			case domain.ScooterStatusReserved:
				res, err := repos.Reservations.GetActiveByScooterForUpdate(ctx, scooterID)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: scooter %d is reserved without an active reservation", domain.ErrInvalidState, scooterID)
				}
				if err != nil {
					return err
				}
				if res.UserID != userID {
					return fmt.Errorf("%w: scooter %d is reserved by another user", domain.ErrForbidden, scooterID)
				}
				consumed = res
			default:
				return fmt.Errorf("%w: scooter %d is %s", domain.ErrNotAvailable, scooterID, scooter.Status)
			}

			tariff, err := repos.Tariffs.GetDefault(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: no tariff configured", domain.ErrMisconfigured)
			}
			if err != nil {
				return err
			}

			user, err := repos.Users.GetByID(ctx, userID)
			if err != nil {
				return err
			}

			if err := repos.Scooters.SetStatus(ctx, scooterID, domain.ScooterStatusRented); err != nil {
				return err
			}
			if consumed != nil {
				if _, err := repos.Reservations.Deactivate(ctx, consumed.ID); err != nil {
					return err
				}
			}

			rental = &domain.Rental{
				ScooterID: scooterID,
				UserID:    userID,
				TariffID:  tariff.ID,
				StartTime: s.now(),
				Status:    domain.RentalStatusActive,
				TotalCost: decimal.Zero,
			}
			if err := repos.Rentals.Create(ctx, rental); err != nil {
				return err
			}

			payment, err = s.payments.OpenHold(ctx, repos, rental, user, s.settings.HoldAmount)
			return err
		})
	})
	if err != nil {
		// The hold exists only when the commit itself failed.
		if payment != nil && payment.HoldIntentID != "" {
			s.cancelOrphanHold(ctx, payment.HoldIntentID)
		}
		logger.ExitMethodWithError("rentalService.StartRental", err, "scooterID", scooterID, "userID", userID)
		return nil, nil, err
	}
	logger.ExitMethod("rentalService.StartRental", "rentalID", rental.ID, "paymentID", payment.ID)
	return rental, payment, nil
}

func (s *rentalService) cancelOrphanHold(ctx context.Context, intentID string) {
	if err := s.gw.CancelHold(context.WithoutCancel(ctx), intentID); err != nil {
		logger.Error("Failed to cancel hold of rolled back rental", "intentID", intentID, "error", err)
	}
}

func (s *rentalService) EndRental(ctx context.Context, scooterID, userID int32) (rental *domain.Rental, payment *domain.Payment, err error) {
	logger.EnterMethod("rentalService.EndRental", "scooterID", scooterID, "userID", userID)
	defer func(start time.Time) { metrics.ObserveOperation("end_rental", start, err) }(time.Now())

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		rental, err = repos.Rentals.GetActiveForUpdate(ctx, scooterID, userID)
		if err != nil {
			return err
		}
		tariff, err := repos.Tariffs.GetByID(ctx, rental.TariffID)
		if err != nil {
			return err
		}
		if err := rental.Complete(s.now(), tariff.PerMinute); err != nil {
			return err
		}
		if err := repos.Rentals.Complete(ctx, rental); err != nil {
			return err
		}

		payment, err = repos.Payments.GetByRentalForUpdate(ctx, rental.ID)
		if err != nil {
			return err
		}
		payment, err = s.payments.CaptureFinal(ctx, repos, payment, rental.TotalCost)
		if err != nil {
			return err
		}
		return repos.Scooters.SetStatus(ctx, scooterID, domain.ScooterStatusAvailable)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.EndRental", err, "scooterID", scooterID, "userID", userID)
		return nil, nil, err
	}
	logger.ExitMethod("rentalService.EndRental", "rentalID", rental.ID, "minutes", rental.TotalMinutes, "cost", rental.TotalCost.StringFixed(2))
	return rental, payment, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return s.repos.Rentals.ListByUser(ctx, userID)
}
