package http

import (
	"net/http"

	"scooter-sharing-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler, wh *WebhookHandler, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)
	router.Use(NewAuthMiddleware(tm).Middleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/billing/webhook", wh.HandleWebhook).Methods(http.MethodPost)

	api.HandleFunc("/scooters", h.ListScooters).Methods(http.MethodGet)
	api.HandleFunc("/scooters", h.CreateScooter).Methods(http.MethodPost)
	api.HandleFunc("/scooters/{id}", h.GetScooter).Methods(http.MethodGet)
	api.HandleFunc("/scooters/{id}/reserve", h.Reserve).Methods(http.MethodPost)
	api.HandleFunc("/scooters/{id}/start", h.StartRental).Methods(http.MethodPost)
	api.HandleFunc("/scooters/{id}/end", h.EndRental).Methods(http.MethodPost)

	api.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet)

	api.HandleFunc("/tariffs", h.ListTariffs).Methods(http.MethodGet)
	api.HandleFunc("/tariffs", h.CreateTariff).Methods(http.MethodPost)

	return router
}
