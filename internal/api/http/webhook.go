package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/service"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBody  = 65536
)

type WebhookHandler struct {
	payments service.PaymentService
}

func NewWebhookHandler(payments service.PaymentService) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

type webhookResponse struct {
	Received  bool                 `json:"received"`
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Matched   bool                 `json:"matched"`
	Changed   bool                 `json:"changed"`
	Status    domain.PaymentStatus `json:"status,omitempty"`
}

// HandleWebhook verifies and applies a payment processor callback. A bad
// signature is answered with 400 so the processor does not treat it as accepted.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, fmt.Errorf("%w: read body: %v", domain.ErrInvalidInput, err))
		return
	}

	result, err := h.payments.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			logger.WarnContext(r.Context(), "Rejected webhook", "error", err)
			writeErrorStatus(w, r, http.StatusBadRequest, err)
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Matched:   result.Matched,
		Changed:   result.Changed,
		Status:    result.Status,
	})
}
