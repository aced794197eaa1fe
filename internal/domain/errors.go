package domain

import (
	"errors"
	"strconv"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNotAvailable         = errors.New("not available")
	ErrForbidden            = errors.New("forbidden")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrMisconfigured        = errors.New("misconfigured")
	ErrGateway              = errors.New("payment gateway error")
	ErrMissingPaymentMethod = errors.New("missing payment method")
	ErrAuthentication       = errors.New("authentication failure")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidInput         = errors.New("invalid input")
)

// ErrorKind returns the stable name of the taxonomy entry err belongs to.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotAvailable):
		return "not_available"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrTooManyRequests):
		return "too_many_requests"
	case errors.Is(err, ErrMisconfigured):
		return "misconfigured"
	case errors.Is(err, ErrGateway):
		return "gateway_error"
	case errors.Is(err, ErrMissingPaymentMethod):
		return "missing_payment_method"
	case errors.Is(err, ErrAuthentication):
		return "authentication_failure"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func itoa(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}
