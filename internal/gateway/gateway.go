package gateway

import (
	"context"

	"scooter-sharing-backend/internal/domain"
)

// Gateway is the external payment processor as seen by the payment orchestrator.
// Every call that leaves the process fails with domain.ErrGateway.
type Gateway interface {
	// ResolveOrCreateCustomer returns the processor customer tagged with the
	// user's id, creating it when none exists.
	ResolveOrCreateCustomer(ctx context.Context, user *domain.User) (string, error)
	CreateHold(ctx context.Context, req HoldRequest) (*Intent, error)
	CancelHold(ctx context.Context, intentID string) error
	ChargeFinal(ctx context.Context, req ChargeRequest) (*Intent, error)
	// ParseEvent verifies the signature before decoding anything. A bad
	// signature yields domain.ErrAuthentication.
	ParseEvent(payload []byte, signature string) (*Event, error)
}

type HoldRequest struct {
	CustomerID  string
	AmountMinor int64
	RentalID    int32
}

type ChargeRequest struct {
	CustomerID      string
	PaymentMethodID string
	AmountMinor     int64
	RentalID        int32
	IdempotencyKey  string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

type EventKind string

const (
	EventIntentSucceeded EventKind = "intent_succeeded"
	EventIntentFailed    EventKind = "intent_failed"
	EventIgnored         EventKind = "ignored"
)

// Event is a verified processor callback reduced to what the orchestrator needs.
type Event struct {
	ID              string
	Type            string
	Kind            EventKind
	IntentID        string
	PaymentMethodID string
	// RentalID is taken from intent metadata; zero when absent.
	RentalID int32
}
