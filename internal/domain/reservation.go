package domain

import "time"

// ReservationLifetime is how long a reservation holds a scooter before the sweeper releases it.
const ReservationLifetime = 5 * time.Minute

type Reservation struct {
	ID        int32     `json:"id"`
	ScooterID int32     `json:"scooter_id"`
	UserID    int32     `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
}

func NewReservation(scooterID, userID int32, now time.Time, lifetime time.Duration) *Reservation {
	return &Reservation{
		ScooterID: scooterID,
		UserID:    userID,
		StartTime: now,
		ExpiresAt: now.Add(lifetime),
		IsActive:  true,
	}
}

func (r *Reservation) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
