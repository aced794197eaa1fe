package repository

import (
	"context"
	"time"

	"scooter-sharing-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

// ScooterRepository is the asset registry. GetForUpdate must be called inside a
// transaction; the row stays locked until that transaction ends.
// SetStatus does not validate transitions.
type ScooterRepository interface {
	Create(ctx context.Context, scooter *domain.Scooter) error
	GetByID(ctx context.Context, id int32) (*domain.Scooter, error)
	GetForUpdate(ctx context.Context, id int32) (*domain.Scooter, error)
	SetStatus(ctx context.Context, id int32, status domain.ScooterStatus) error
	List(ctx context.Context) ([]domain.Scooter, error)
}

type TariffRepository interface {
	Create(ctx context.Context, tariff *domain.Tariff) error
	GetByID(ctx context.Context, id int32) (*domain.Tariff, error)
	// GetDefault returns the first tariff by creation order.
	GetDefault(ctx context.Context) (*domain.Tariff, error)
	List(ctx context.Context) ([]domain.Tariff, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetForUpdate(ctx context.Context, id int32) (*domain.Reservation, error)
	GetActiveByScooterForUpdate(ctx context.Context, scooterID int32) (*domain.Reservation, error)
	ListActiveByUser(ctx context.Context, userID int32) ([]domain.Reservation, error)
	ListExpired(ctx context.Context, now time.Time) ([]domain.Reservation, error)
	// Deactivate reports whether the reservation was active before the call.
	Deactivate(ctx context.Context, id int32) (bool, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetActiveForUpdate(ctx context.Context, scooterID, userID int32) (*domain.Rental, error)
	Complete(ctx context.Context, rental *domain.Rental) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByRentalForUpdate(ctx context.Context, rentalID int32) (*domain.Payment, error)
	GetByHoldIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error)
	GetByFinalIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Users        UserRepository
	Scooters     ScooterRepository
	Tariffs      TariffRepository
	Reservations ReservationRepository
	Rentals      RentalRepository
	Payments     PaymentRepository
}

// Transactor runs fn inside one database transaction. The transaction commits
// when fn returns nil and rolls back otherwise, including on panic.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
