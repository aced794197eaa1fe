package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"50":     5000,
		"50.00":  5000,
		"10.5":   1050,
		"0.015":  2,
		"19.994": 1999,
		"0":      0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ToMinorUnits(decimal.RequireFromString(in)), in)
	}
}

func TestPayment_IsTerminal(t *testing.T) {
	assert.False(t, (&Payment{Status: PaymentStatusPending}).IsTerminal())
	assert.False(t, (&Payment{Status: PaymentStatusAuthorized}).IsTerminal())
	assert.False(t, (&Payment{Status: PaymentStatusProcessing}).IsTerminal())
	assert.True(t, (&Payment{Status: PaymentStatusCaptured}).IsTerminal())
	assert.True(t, (&Payment{Status: PaymentStatusFailed}).IsTerminal())
}
