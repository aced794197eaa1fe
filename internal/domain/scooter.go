package domain

import (
	"fmt"
	"time"
)

type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "AVAILABLE"
	ScooterStatusReserved    ScooterStatus = "RESERVED"
	ScooterStatusRented      ScooterStatus = "RENTED"
	ScooterStatusUnavailable ScooterStatus = "UNAVAILABLE"
)

const (
	MinBatteryLevel = 0
	MaxBatteryLevel = 100
)

type Scooter struct {
	ID           int32         `json:"id"`
	Status       ScooterStatus `json:"status"`
	BatteryLevel int32         `json:"battery_level"`
	CreatedOn    time.Time     `json:"created_on"`
}

// Validate checks the scooter fields that the database constraints also enforce.
func (s *Scooter) Validate() error {
	switch s.Status {
	case ScooterStatusAvailable, ScooterStatusReserved, ScooterStatusRented, ScooterStatusUnavailable:
	default:
		return fmt.Errorf("%w: unknown scooter status %q", ErrInvalidInput, s.Status)
	}
	if s.BatteryLevel < MinBatteryLevel || s.BatteryLevel > MaxBatteryLevel {
		return fmt.Errorf("%w: battery level %d out of range [%d, %d]", ErrInvalidInput, s.BatteryLevel, MinBatteryLevel, MaxBatteryLevel)
	}
	return nil
}
