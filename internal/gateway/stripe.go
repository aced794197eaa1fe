package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/logger"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	metadataUserID   = "app_user_id"
	metadataRentalID = "rental_id"

	DefaultTimeout = 10 * time.Second
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	Timeout       time.Duration
	// Backend overrides the API backend; nil uses the live Stripe API.
	Backend stripe.Backend
}

type StripeGateway struct {
	client        *client.API
	webhookSecret string
	currency      string
	timeout       time.Duration
}

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	var backends *stripe.Backends
	if cfg.Backend != nil {
		backends = &stripe.Backends{API: cfg.Backend, Connect: cfg.Backend, Uploads: cfg.Backend}
	}
	sc := &client.API{}
	sc.Init(cfg.SecretKey, backends)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StripeGateway{
		client:        sc,
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		timeout:       timeout,
	}
}

func (g *StripeGateway) ResolveOrCreateCustomer(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	userID := strconv.Itoa(int(user.ID))

	logger.ExternalServiceCall("stripe", "customers.search", "user_id", user.ID)
	search := &stripe.CustomerSearchParams{}
	search.Context = ctx
	search.Query = fmt.Sprintf("metadata['%s']:'%s'", metadataUserID, userID)
	iter := g.client.Customers.Search(search)
	if iter.Next() {
		id := iter.Customer().ID
		logger.ExternalServiceResult("stripe", "customers.search", nil, "customer_id", id)
		return id, nil
	}
	if err := iter.Err(); err != nil {
		logger.ExternalServiceResult("stripe", "customers.search", err)
		return "", fmt.Errorf("%w: search customer: %w", domain.ErrGateway, err)
	}
	logger.ExternalServiceResult("stripe", "customers.search", nil, "customer_id", "")

	params := &stripe.CustomerParams{
		Name: stripe.String(user.DisplayName()),
	}
	if user.Email != "" {
		params.Email = stripe.String(user.Email)
	}
	params.Context = ctx
	params.AddMetadata(metadataUserID, userID)

	logger.ExternalServiceCall("stripe", "customers.create", "user_id", user.ID)
	c, err := g.client.Customers.New(params)
	logger.ExternalServiceResult("stripe", "customers.create", err)
	if err != nil {
		return "", fmt.Errorf("%w: create customer: %w", domain.ErrGateway, err)
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateHold(ctx context.Context, req HoldRequest) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:           stripe.Int64(req.AmountMinor),
		Currency:         stripe.String(g.currency),
		Customer:         stripe.String(req.CustomerID),
		CaptureMethod:    stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		SetupFutureUsage: stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataRentalID, strconv.Itoa(int(req.RentalID)))

	logger.ExternalServiceCall("stripe", "payment_intents.create_hold", "rental_id", req.RentalID, "amount_minor", req.AmountMinor)
	pi, err := g.client.PaymentIntents.New(params)
	logger.ExternalServiceResult("stripe", "payment_intents.create_hold", err)
	if err != nil {
		return nil, fmt.Errorf("%w: create hold: %w", domain.ErrGateway, err)
	}
	return toIntent(pi), nil
}

func (g *StripeGateway) CancelHold(ctx context.Context, intentID string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	logger.ExternalServiceCall("stripe", "payment_intents.cancel", "intent_id", intentID)
	_, err := g.client.PaymentIntents.Cancel(intentID, params)
	logger.ExternalServiceResult("stripe", "payment_intents.cancel", err)
	if err != nil {
		return fmt.Errorf("%w: cancel hold %s: %w", domain.ErrGateway, intentID, err)
	}
	return nil
}

func (g *StripeGateway) ChargeFinal(ctx context.Context, req ChargeRequest) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountMinor),
		Currency:      stripe.String(g.currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataRentalID, strconv.Itoa(int(req.RentalID)))
	params.SetIdempotencyKey(req.IdempotencyKey)

	logger.ExternalServiceCall("stripe", "payment_intents.charge_final", "rental_id", req.RentalID, "amount_minor", req.AmountMinor)
	pi, err := g.client.PaymentIntents.New(params)
	logger.ExternalServiceResult("stripe", "payment_intents.charge_final", err)
	if err != nil {
		return nil, fmt.Errorf("%w: charge final amount: %w", domain.ErrGateway, err)
	}
	return toIntent(pi), nil
}

func (g *StripeGateway) ParseEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}

	out := &Event{ID: event.ID, Type: string(event.Type), Kind: EventIgnored}
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.amount_capturable_updated":
		out.Kind = EventIntentSucceeded
	case "payment_intent.payment_failed":
		out.Kind = EventIntentFailed
	default:
		return out, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", domain.ErrInvalidInput, event.ID)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %w", domain.ErrInvalidInput, err)
	}
	out.IntentID = pi.ID
	if pi.PaymentMethod != nil {
		out.PaymentMethodID = pi.PaymentMethod.ID
	}
	if raw, ok := pi.Metadata[metadataRentalID]; ok {
		if id, err := strconv.ParseInt(raw, 10, 32); err == nil {
			out.RentalID = int32(id)
		}
	}
	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
}

var _ Gateway = (*StripeGateway)(nil)
