package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/gateway"
	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/metrics"
	"scooter-sharing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	tx  repository.Transactor
	gw  gateway.Gateway
	now func() time.Time
}

func NewPaymentService(tx repository.Transactor, gw gateway.Gateway) PaymentService {
	return &paymentService{tx: tx, gw: gw, now: time.Now}
}

func (s *paymentService) OpenHold(ctx context.Context, repos repository.Repositories, rental *domain.Rental, user *domain.User, amount decimal.Decimal) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.OpenHold", "rentalID", rental.ID, "amount", amount.StringFixed(2))

	customerID, err := s.gw.ResolveOrCreateCustomer(ctx, user)
	if err != nil {
		logger.ExitMethodWithError("paymentService.OpenHold", err, "rentalID", rental.ID)
		return nil, err
	}

	minor := domain.ToMinorUnits(amount)
	intent, err := s.gw.CreateHold(ctx, gateway.HoldRequest{
		CustomerID:  customerID,
		AmountMinor: minor,
		RentalID:    rental.ID,
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.OpenHold", err, "rentalID", rental.ID)
		return nil, err
	}

	payment := &domain.Payment{
		RentalID:        rental.ID,
		HoldAmount:      amount,
		HoldAmountMinor: minor,
		FinalAmount:     decimal.Zero,
		Status:          domain.PaymentStatusPending,
		CustomerID:      customerID,
		HoldIntentID:    intent.ID,
	}
	if err := repos.Payments.Create(ctx, payment); err != nil {
		if cancelErr := s.gw.CancelHold(context.WithoutCancel(ctx), intent.ID); cancelErr != nil {
			logger.Error("Failed to cancel unrecorded hold", "intentID", intent.ID, "error", cancelErr)
		}
		logger.ExitMethodWithError("paymentService.OpenHold", err, "rentalID", rental.ID)
		return nil, err
	}
	payment.HoldClientSecret = intent.ClientSecret

	logger.ExitMethod("paymentService.OpenHold", "paymentID", payment.ID, "holdIntentID", intent.ID)
	return payment, nil
}

func (s *paymentService) CaptureFinal(ctx context.Context, repos repository.Repositories, payment *domain.Payment, amount decimal.Decimal) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.CaptureFinal", "paymentID", payment.ID, "amount", amount.StringFixed(2))

	if payment.PaymentMethodID == "" {
		err := fmt.Errorf("%w: payment %d has no confirmed payment method", domain.ErrMissingPaymentMethod, payment.ID)
		logger.ExitMethodWithError("paymentService.CaptureFinal", err, "paymentID", payment.ID)
		return nil, err
	}

	if payment.HoldIntentID != "" {
		if err := s.gw.CancelHold(ctx, payment.HoldIntentID); err != nil {
			logger.Warn("Failed to cancel hold before final charge", "paymentID", payment.ID, "intentID", payment.HoldIntentID, "error", err)
		}
	}

	minor := domain.ToMinorUnits(amount)
	intent, err := s.gw.ChargeFinal(ctx, gateway.ChargeRequest{
		CustomerID:      payment.CustomerID,
		PaymentMethodID: payment.PaymentMethodID,
		AmountMinor:     minor,
		RentalID:        payment.RentalID,
		IdempotencyKey:  fmt.Sprintf("final-charge-%d-%s", payment.RentalID, uuid.NewString()),
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.CaptureFinal", err, "paymentID", payment.ID)
		return nil, err
	}

	payment.FinalAmount = amount
	payment.FinalAmountMinor = minor
	payment.FinalIntentID = intent.ID
	payment.Status = domain.PaymentStatusProcessing
	payment.UpdatedOn = s.now()
	if err := repos.Payments.Update(ctx, payment); err != nil {
		logger.ExitMethodWithError("paymentService.CaptureFinal", err, "paymentID", payment.ID)
		return nil, err
	}

	logger.ExitMethod("paymentService.CaptureFinal", "paymentID", payment.ID, "finalIntentID", intent.ID)
	return payment, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := s.gw.ParseEvent(payload, signature)
	if err != nil {
		metrics.GatewayEvent("unknown", "rejected")
		logger.Warn("Rejected payment webhook", "error", err)
		return nil, err
	}
	return s.ApplyEvent(ctx, event)
}

type intentRole int

const (
	roleNone intentRole = iota
	roleHold
	roleFinal
)

func (s *paymentService) ApplyEvent(ctx context.Context, event *gateway.Event) (*WebhookResult, error) {
	logger.EnterMethod("paymentService.ApplyEvent", "eventID", event.ID, "type", event.Type, "intentID", event.IntentID)
	result := &WebhookResult{EventID: event.ID, EventType: event.Type}

	if event.Kind == gateway.EventIgnored || event.IntentID == "" {
		metrics.GatewayEvent(string(event.Kind), "ignored")
		logger.ExitMethod("paymentService.ApplyEvent", "eventID", event.ID, "ignored", true)
		return result, nil
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		payment, role, err := s.match(ctx, repos, event)
		if err != nil || role == roleNone {
			return err
		}
		result.Matched = true
		result.PaymentID = payment.ID

		switch {
		case event.Kind == gateway.EventIntentFailed:
			payment.Status = domain.PaymentStatusFailed
			result.Changed = true
		case role == roleHold:
			if payment.PaymentMethodID == "" && event.PaymentMethodID != "" {
				payment.PaymentMethodID = event.PaymentMethodID
				payment.Status = domain.PaymentStatusAuthorized
				result.Changed = true
			}
		case role == roleFinal:
			payment.Status = domain.PaymentStatusCaptured
			result.Changed = true
		}
		result.Status = payment.Status

		if !result.Changed {
			return nil
		}
		payment.UpdatedOn = s.now()
		return repos.Payments.Update(ctx, payment)
	})
	if err != nil {
		metrics.GatewayEvent(string(event.Kind), "error")
		logger.ExitMethodWithError("paymentService.ApplyEvent", err, "eventID", event.ID)
		return nil, err
	}

	outcome := "unmatched"
	if result.Matched {
		outcome = "matched"
	}
	metrics.GatewayEvent(string(event.Kind), outcome)
	logger.ExitMethod("paymentService.ApplyEvent", "eventID", event.ID, "matched", result.Matched, "status", result.Status)
	return result, nil
}

// match finds the payment an intent belongs to and locks it. Intents carry the
// rental id, so a callback that overtook the final charge commit still matches
// once the rental's payment row is unlocked.
func (s *paymentService) match(ctx context.Context, repos repository.Repositories, event *gateway.Event) (*domain.Payment, intentRole, error) {
	payment, err := repos.Payments.GetByHoldIntentForUpdate(ctx, event.IntentID)
	if err == nil {
		return payment, roleHold, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, roleNone, err
	}

	payment, err = repos.Payments.GetByFinalIntentForUpdate(ctx, event.IntentID)
	if err == nil {
		return payment, roleFinal, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, roleNone, err
	}

	if event.RentalID == 0 {
		return nil, roleNone, nil
	}
	payment, err = repos.Payments.GetByRentalForUpdate(ctx, event.RentalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, roleNone, nil
	}
	if err != nil {
		return nil, roleNone, err
	}
	switch event.IntentID {
	case payment.HoldIntentID:
		return payment, roleHold, nil
	case payment.FinalIntentID:
		return payment, roleFinal, nil
	}
	return nil, roleNone, nil
}
