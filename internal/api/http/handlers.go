package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	scooters     service.ScooterService
	reservations service.ReservationService
	rentals      service.RentalService
	tariffs      service.TariffService
}

func NewHandler(
	scooters service.ScooterService,
	reservations service.ReservationService,
	rentals service.RentalService,
	tariffs service.TariffService,
) *Handler {
	return &Handler{
		scooters:     scooters,
		reservations: reservations,
		rentals:      rentals,
		tariffs:      tariffs,
	}
}

type createScooterRequest struct {
	ID           int32  `json:"id" validate:"required,gt=0"`
	BatteryLevel *int32 `json:"battery_level" validate:"required,gte=0,lte=100"`
}

type createTariffRequest struct {
	Name      string `json:"name" validate:"max=100"`
	PerMinute string `json:"per_minute" validate:"required,money"`
}

// rentalResponse pairs a rental with its payment. On start the payment carries
// the client secret the rider uses to confirm the hold.
type rentalResponse struct {
	Rental  *domain.Rental  `json:"rental"`
	Payment *domain.Payment `json:"payment"`
}

func (h *Handler) ListScooters(w http.ResponseWriter, r *http.Request) {
	scooters, err := h.scooters.ListScooters(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scooters)
}

func (h *Handler) GetScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scooter, err := h.scooters.GetScooter(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (h *Handler) CreateScooter(w http.ResponseWriter, r *http.Request) {
	var req createScooterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	scooter, err := h.scooters.CreateScooter(r.Context(), req.ID, *req.BatteryLevel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, scooter)
}

func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	scooterID, userID, err := scooterAndUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.reservations.Reserve(r.Context(), scooterID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) StartRental(w http.ResponseWriter, r *http.Request) {
	scooterID, userID, err := scooterAndUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, payment, err := h.rentals.StartRental(r.Context(), scooterID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rentalResponse{Rental: rental, Payment: payment})
}

func (h *Handler) EndRental(w http.ResponseWriter, r *http.Request) {
	scooterID, userID, err := scooterAndUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, payment, err := h.rentals.EndRental(r.Context(), scooterID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalResponse{Rental: rental, Payment: payment})
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	reservations, err := h.reservations.ListReservations(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rentals, err := h.rentals.ListRentals(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *Handler) ListTariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.tariffs.ListTariffs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

func (h *Handler) CreateTariff(w http.ResponseWriter, r *http.Request) {
	var req createTariffRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	perMinute, err := decimal.NewFromString(req.PerMinute)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: per_minute: %v", domain.ErrInvalidInput, err))
		return
	}
	tariff, err := h.tariffs.CreateTariff(r.Context(), strings.TrimSpace(req.Name), perMinute)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tariff)
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid scooter id %q", domain.ErrInvalidInput, raw)
	}
	return int32(id), nil
}

func scooterAndUser(r *http.Request) (int32, int32, error) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		return 0, 0, err
	}
	scooterID, err := pathID(r)
	if err != nil {
		return 0, 0, err
	}
	return scooterID, userID, nil
}
