package service

import (
	"context"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/gateway"
	"scooter-sharing-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockScooterRepo struct {
	mock.Mock
}

func (m *MockScooterRepo) Create(ctx context.Context, scooter *domain.Scooter) error {
	args := m.Called(ctx, scooter)
	return args.Error(0)
}
func (m *MockScooterRepo) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) SetStatus(ctx context.Context, id int32, status domain.ScooterStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockScooterRepo) List(ctx context.Context) ([]domain.Scooter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Scooter), args.Error(1)
}

type MockTariffRepo struct {
	mock.Mock
}

func (m *MockTariffRepo) Create(ctx context.Context, tariff *domain.Tariff) error {
	args := m.Called(ctx, tariff)
	return args.Error(0)
}
func (m *MockTariffRepo) GetByID(ctx context.Context, id int32) (*domain.Tariff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}
func (m *MockTariffRepo) GetDefault(ctx context.Context) (*domain.Tariff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}
func (m *MockTariffRepo) List(ctx context.Context) ([]domain.Tariff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tariff), args.Error(1)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetActiveByScooterForUpdate(ctx context.Context, scooterID int32) (*domain.Reservation, error) {
	args := m.Called(ctx, scooterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Deactivate(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetActiveForUpdate(ctx context.Context, scooterID, userID int32) (*domain.Rental, error) {
	args := m.Called(ctx, scooterID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Complete(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByRentalForUpdate(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByHoldIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByFinalIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}
func (m *MockLocker) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ResolveOrCreateCustomer(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) CreateHold(ctx context.Context, req gateway.HoldRequest) (*gateway.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Intent), args.Error(1)
}
func (m *MockGateway) CancelHold(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}
func (m *MockGateway) ChargeFinal(ctx context.Context, req gateway.ChargeRequest) (*gateway.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Intent), args.Error(1)
}
func (m *MockGateway) ParseEvent(payload []byte, signature string) (*gateway.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Event), args.Error(1)
}

// fakeTransactor runs fn against the mocked repositories and records the
// outcome the database would have seen.
type fakeTransactor struct {
	repos     repository.Repositories
	commits   int
	rollbacks int
	commitErr error
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			f.rollbacks++
			panic(p)
		}
	}()
	if err := fn(ctx, f.repos); err != nil {
		f.rollbacks++
		return err
	}
	if f.commitErr != nil {
		f.rollbacks++
		return f.commitErr
	}
	f.commits++
	return nil
}

type mockRepos struct {
	users        *MockUserRepo
	scooters     *MockScooterRepo
	tariffs      *MockTariffRepo
	reservations *MockReservationRepo
	rentals      *MockRentalRepo
	payments     *MockPaymentRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:        new(MockUserRepo),
		scooters:     new(MockScooterRepo),
		tariffs:      new(MockTariffRepo),
		reservations: new(MockReservationRepo),
		rentals:      new(MockRentalRepo),
		payments:     new(MockPaymentRepo),
	}
}

func (m *mockRepos) repositories() repository.Repositories {
	return repository.Repositories{
		Users:        m.users,
		Scooters:     m.scooters,
		Tariffs:      m.tariffs,
		Reservations: m.reservations,
		Rentals:      m.rentals,
		Payments:     m.payments,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
