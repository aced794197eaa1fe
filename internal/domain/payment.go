package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// Payment tracks the gateway side of one rental.
// The *Minor fields are what the gateway is charged; the decimal fields are what
// the rental costs. Both are written together.
type Payment struct {
	ID               int32           `json:"id"`
	RentalID         int32           `json:"rental_id"`
	HoldAmount       decimal.Decimal `json:"hold_amount"`
	HoldAmountMinor  int64           `json:"hold_amount_minor"`
	FinalAmount      decimal.Decimal `json:"final_amount"`
	FinalAmountMinor int64           `json:"final_amount_minor"`
	Status           PaymentStatus   `json:"status"`
	CustomerID       string          `json:"customer_id,omitempty"`
	PaymentMethodID  string          `json:"payment_method_id,omitempty"`
	HoldIntentID     string          `json:"hold_intent_id,omitempty"`
	FinalIntentID    string          `json:"final_intent_id,omitempty"`
	// HoldClientSecret lets the client confirm the hold. Never persisted.
	HoldClientSecret string    `json:"hold_client_secret,omitempty"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCaptured || p.Status == PaymentStatusFailed
}

// ToMinorUnits converts a two-decimal currency amount to an integer count of cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
