package service

import (
	"context"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/gateway"
	"scooter-sharing-backend/internal/lock"
	"scooter-sharing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type ReservationService interface {
	Reserve(ctx context.Context, scooterID, userID int32) (*domain.Reservation, error)
	ListReservations(ctx context.Context, userID int32) ([]domain.Reservation, error)
	// SweepExpired deactivates past-due reservations and returns how many it changed.
	SweepExpired(ctx context.Context) (int, error)
}

type RentalService interface {
	StartRental(ctx context.Context, scooterID, userID int32) (*domain.Rental, *domain.Payment, error)
	EndRental(ctx context.Context, scooterID, userID int32) (*domain.Rental, *domain.Payment, error)
	ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error)
}

// PaymentService drives a payment through hold, final charge and the
// processor callbacks. OpenHold and CaptureFinal run on the caller's
// transaction so their writes commit or roll back with it.
type PaymentService interface {
	OpenHold(ctx context.Context, repos repository.Repositories, rental *domain.Rental, user *domain.User, amount decimal.Decimal) (*domain.Payment, error)
	CaptureFinal(ctx context.Context, repos repository.Repositories, payment *domain.Payment, amount decimal.Decimal) (*domain.Payment, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
	ApplyEvent(ctx context.Context, event *gateway.Event) (*WebhookResult, error)
}

type TariffService interface {
	ListTariffs(ctx context.Context) ([]domain.Tariff, error)
	CreateTariff(ctx context.Context, name string, perMinute decimal.Decimal) (*domain.Tariff, error)
}

type ScooterService interface {
	ListScooters(ctx context.Context) ([]domain.Scooter, error)
	GetScooter(ctx context.Context, id int32) (*domain.Scooter, error)
	// CreateScooter registers a new scooter as AVAILABLE.
	CreateScooter(ctx context.Context, id, batteryLevel int32) (*domain.Scooter, error)
}

// WebhookResult describes what a processor callback did.
type WebhookResult struct {
	EventID   string
	EventType string
	Matched   bool
	Changed   bool
	PaymentID int32
	Status    domain.PaymentStatus
}

type Settings struct {
	HoldAmount          decimal.Decimal
	LockTTL             time.Duration
	ReservationLifetime time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		HoldAmount:          decimal.NewFromInt(50),
		LockTTL:             lock.DefaultTTL,
		ReservationLifetime: domain.ReservationLifetime,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if !s.HoldAmount.IsPositive() {
		s.HoldAmount = d.HoldAmount
	}
	if s.LockTTL <= 0 {
		s.LockTTL = d.LockTTL
	}
	if s.ReservationLifetime <= 0 {
		s.ReservationLifetime = d.ReservationLifetime
	}
	return s
}
