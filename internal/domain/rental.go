package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

type Rental struct {
	ID           int32           `json:"id"`
	ScooterID    int32           `json:"scooter_id"`
	UserID       int32           `json:"user_id"`
	TariffID     int32           `json:"tariff_id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      *time.Time      `json:"end_time,omitempty"`
	Status       RentalStatus    `json:"status"`
	TotalMinutes int32           `json:"total_minutes"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// BillableMinutes returns the whole minutes between start and end, never less than one.
func BillableMinutes(start, end time.Time) int32 {
	minutes := int32(end.Sub(start) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Complete ends an active rental at end and prices it with perMinute.
// The cost is computed here only; a completed rental cannot be completed again.
func (r *Rental) Complete(end time.Time, perMinute decimal.Decimal) error {
	if r.Status != RentalStatusActive {
		return fmt.Errorf("%w: rental %d is %s", ErrInvalidState, r.ID, r.Status)
	}
	r.EndTime = &end
	r.Status = RentalStatusCompleted
	r.TotalMinutes = BillableMinutes(r.StartTime, end)
	r.TotalCost = perMinute.Mul(decimal.NewFromInt32(r.TotalMinutes))
	return nil
}
