package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postWebhook(ts *testServer, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestWebhook_Applied(t *testing.T) {
	ts := newTestServer()
	body := `{"id":"evt_1","type":"payment_intent.succeeded"}`
	ts.payments.On("HandleWebhook", mock.Anything, []byte(body), "t=1,v1=abc").Return(&service.WebhookResult{
		EventID: "evt_1", EventType: "payment_intent.succeeded",
		Matched: true, Changed: true, PaymentID: 4, Status: domain.PaymentStatusAuthorized,
	}, nil)

	rec := postWebhook(ts, body, "t=1,v1=abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true,"event_id":"evt_1","event_type":"payment_intent.succeeded",
		"matched":true,"changed":true,"status":"AUTHORIZED"}`, rec.Body.String())
	ts.assertExpectations(t)
}

func TestWebhook_UnmatchedIsAcknowledged(t *testing.T) {
	ts := newTestServer()
	ts.payments.On("HandleWebhook", mock.Anything, mock.Anything, "sig").Return(&service.WebhookResult{
		EventID: "evt_2", EventType: "payment_intent.succeeded",
	}, nil)

	rec := postWebhook(ts, `{}`, "sig")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matched":false`)
}

func TestWebhook_BadSignatureIs400(t *testing.T) {
	ts := newTestServer()
	ts.payments.On("HandleWebhook", mock.Anything, mock.Anything, "").
		Return(nil, fmt.Errorf("%w: webhook signature: missing header", domain.ErrAuthentication))

	rec := postWebhook(ts, `{}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "authentication_failure", decodeError(t, rec.Body.Bytes()).Error)
}

func TestWebhook_ApplyFailureIs500(t *testing.T) {
	ts := newTestServer()
	ts.payments.On("HandleWebhook", mock.Anything, mock.Anything, "sig").Return(nil, fmt.Errorf("db down"))

	rec := postWebhook(ts, `{}`, "sig")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec.Body.Bytes()).Detail)
}
