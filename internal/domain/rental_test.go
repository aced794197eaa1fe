package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRental_Complete(t *testing.T) {
	start := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	perMinute := decimal.RequireFromString("10.00")

	t.Run("Five minutes", func(t *testing.T) {
		rt := &Rental{ID: 1, StartTime: start, Status: RentalStatusActive}
		require.NoError(t, rt.Complete(start.Add(5*time.Minute), perMinute))
		assert.Equal(t, RentalStatusCompleted, rt.Status)
		assert.Equal(t, int32(5), rt.TotalMinutes)
		assert.True(t, rt.TotalCost.Equal(decimal.RequireFromString("50.00")), rt.TotalCost.String())
		require.NotNil(t, rt.EndTime)
		assert.Equal(t, start.Add(5*time.Minute), *rt.EndTime)
	})

	t.Run("Thirty seconds bills one minute", func(t *testing.T) {
		rt := &Rental{ID: 2, StartTime: start, Status: RentalStatusActive}
		require.NoError(t, rt.Complete(start.Add(30*time.Second), perMinute))
		assert.Equal(t, int32(1), rt.TotalMinutes)
		assert.True(t, rt.TotalCost.Equal(perMinute))
	})

	t.Run("Partial minutes are truncated", func(t *testing.T) {
		rt := &Rental{ID: 3, StartTime: start, Status: RentalStatusActive}
		require.NoError(t, rt.Complete(start.Add(7*time.Minute+59*time.Second), decimal.RequireFromString("3.25")))
		assert.Equal(t, int32(7), rt.TotalMinutes)
		assert.Equal(t, "22.75", rt.TotalCost.StringFixed(2))
	})

	t.Run("Already completed", func(t *testing.T) {
		end := start.Add(time.Minute)
		rt := &Rental{ID: 4, StartTime: start, EndTime: &end, Status: RentalStatusCompleted, TotalMinutes: 1, TotalCost: perMinute}
		err := rt.Complete(start.Add(time.Hour), perMinute)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, int32(1), rt.TotalMinutes)
		assert.Equal(t, end, *rt.EndTime)
	})
}

func TestReservation_NewReservation(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	res := NewReservation(546, 1, now, ReservationLifetime)

	assert.True(t, res.IsActive)
	assert.Equal(t, now, res.StartTime)
	assert.Equal(t, 5*time.Minute, res.ExpiresAt.Sub(res.StartTime))
	assert.False(t, res.IsExpired(now.Add(4*time.Minute)))
	assert.True(t, res.IsExpired(now.Add(6*time.Minute)))
}
