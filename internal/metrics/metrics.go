package metrics

import (
	"time"

	"scooter-sharing-backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scooter_operations_total",
			Help: "Reservation and rental operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scooter_operation_duration_seconds",
			Help:    "Duration of reservation and rental operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	gatewayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_gateway_events_total",
			Help: "Processed payment gateway callbacks",
		},
		[]string{"kind", "result"},
	)

	expiredReservations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_expired_total",
			Help: "Reservations deactivated by the expiry sweep",
		},
	)
)

// ObserveOperation records one finished operation. The outcome label is the
// error kind, or "ok".
func ObserveOperation(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.ErrorKind(err)
	}
	operations.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func GatewayEvent(kind, result string) {
	gatewayEvents.WithLabelValues(kind, result).Inc()
}

func ReservationsExpired(n int) {
	expiredReservations.Add(float64(n))
}
