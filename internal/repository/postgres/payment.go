package postgres

import (
	"context"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, hold_amount, hold_amount_minor, final_amount, final_amount_minor, status,
	COALESCE(customer_id, ''), COALESCE(payment_method_id, ''), COALESCE(hold_intent_id, ''), COALESCE(final_intent_id, ''),
	created_on, updated_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	query := `INSERT INTO payments (rental_id, hold_amount, hold_amount_minor, final_amount, final_amount_minor, status,
	              customer_id, payment_method_id, hold_intent_id, final_intent_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12)
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		p.RentalID, p.HoldAmount, p.HoldAmountMinor, p.FinalAmount, p.FinalAmountMinor, p.Status,
		p.CustomerID, p.PaymentMethodID, p.HoldIntentID, p.FinalIntentID, p.CreatedOn, p.UpdatedOn,
	).Scan(&p.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("payment of rental %d", p.RentalID))
	}
	return nil
}

func (r *paymentRepository) GetByRentalForUpdate(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 FOR UPDATE`
	return r.get(ctx, fmt.Sprintf("payment of rental %d", rentalID), query, rentalID)
}

func (r *paymentRepository) GetByHoldIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE hold_intent_id = $1 FOR UPDATE`
	return r.get(ctx, fmt.Sprintf("payment with hold intent %s", intentID), query, intentID)
}

func (r *paymentRepository) GetByFinalIntentForUpdate(ctx context.Context, intentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE final_intent_id = $1 FOR UPDATE`
	return r.get(ctx, fmt.Sprintf("payment with final intent %s", intentID), query, intentID)
}

func (r *paymentRepository) get(ctx context.Context, what, query string, arg any) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.RentalID, &p.HoldAmount, &p.HoldAmountMinor, &p.FinalAmount, &p.FinalAmountMinor, &p.Status,
		&p.CustomerID, &p.PaymentMethodID, &p.HoldIntentID, &p.FinalIntentID, &p.CreatedOn, &p.UpdatedOn,
	)
	if err != nil {
		return nil, translateError(err, what)
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	p.UpdatedOn = time.Now()
	query := `UPDATE payments SET hold_amount = $1, hold_amount_minor = $2, final_amount = $3, final_amount_minor = $4,
	              status = $5, customer_id = NULLIF($6, ''), payment_method_id = NULLIF($7, ''),
	              hold_intent_id = NULLIF($8, ''), final_intent_id = NULLIF($9, ''), updated_on = $10
	          WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		p.HoldAmount, p.HoldAmountMinor, p.FinalAmount, p.FinalAmountMinor,
		p.Status, p.CustomerID, p.PaymentMethodID, p.HoldIntentID, p.FinalIntentID, p.UpdatedOn, p.ID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("payment %d", p.ID))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: payment %d", domain.ErrNotFound, p.ID)
	}
	return nil
}
