package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/gateway"
	"scooter-sharing-backend/internal/repository"
	"scooter-sharing-backend/internal/security"
	"scooter-sharing-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type MockScooterService struct {
	mock.Mock
}

func (m *MockScooterService) ListScooters(ctx context.Context) ([]domain.Scooter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Scooter), args.Error(1)
}
func (m *MockScooterService) GetScooter(ctx context.Context, id int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterService) CreateScooter(ctx context.Context, id, batteryLevel int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id, batteryLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Reserve(ctx context.Context, scooterID, userID int32) (*domain.Reservation, error) {
	args := m.Called(ctx, scooterID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ListReservations(ctx context.Context, userID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationService) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) StartRental(ctx context.Context, scooterID, userID int32) (*domain.Rental, *domain.Payment, error) {
	args := m.Called(ctx, scooterID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(*domain.Payment), args.Error(2)
}
func (m *MockRentalService) EndRental(ctx context.Context, scooterID, userID int32) (*domain.Rental, *domain.Payment, error) {
	args := m.Called(ctx, scooterID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(*domain.Payment), args.Error(2)
}
func (m *MockRentalService) ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockTariffService struct {
	mock.Mock
}

func (m *MockTariffService) ListTariffs(ctx context.Context) ([]domain.Tariff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tariff), args.Error(1)
}
func (m *MockTariffService) CreateTariff(ctx context.Context, name string, perMinute decimal.Decimal) (*domain.Tariff, error) {
	args := m.Called(ctx, name, perMinute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) OpenHold(ctx context.Context, repos repository.Repositories, rental *domain.Rental, user *domain.User, amount decimal.Decimal) (*domain.Payment, error) {
	args := m.Called(ctx, repos, rental, user, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) CaptureFinal(ctx context.Context, repos repository.Repositories, payment *domain.Payment, amount decimal.Decimal) (*domain.Payment, error) {
	args := m.Called(ctx, repos, payment, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*service.WebhookResult, error) {
	args := m.Called(ctx, payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WebhookResult), args.Error(1)
}
func (m *MockPaymentService) ApplyEvent(ctx context.Context, event *gateway.Event) (*service.WebhookResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WebhookResult), args.Error(1)
}

type testServer struct {
	router       *mux.Router
	tokens       security.TokenManager
	scooters     *MockScooterService
	reservations *MockReservationService
	rentals      *MockRentalService
	tariffs      *MockTariffService
	payments     *MockPaymentService
}

func newTestServer() *testServer {
	ts := &testServer{
		tokens:       security.NewTokenManager(testSecret),
		scooters:     new(MockScooterService),
		reservations: new(MockReservationService),
		rentals:      new(MockRentalService),
		tariffs:      new(MockTariffService),
		payments:     new(MockPaymentService),
	}
	h := NewHandler(ts.scooters, ts.reservations, ts.rentals, ts.tariffs)
	ts.router = NewRouter(h, NewWebhookHandler(ts.payments), ts.tokens)
	return ts
}

// do sends a request as userID; userID 0 sends it without a token.
func (ts *testServer) do(t *testing.T, method, path, body string, userID int32) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		token, err := ts.tokens.GenerateAccessToken(userID, "rider@example.com", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) assertExpectations(t *testing.T) {
	ts.scooters.AssertExpectations(t)
	ts.reservations.AssertExpectations(t)
	ts.rentals.AssertExpectations(t)
	ts.tariffs.AssertExpectations(t)
	ts.payments.AssertExpectations(t)
}
