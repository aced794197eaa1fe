package postgres

import (
	"context"
	"fmt"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, scooter_id, user_id, tariff_id, start_time, end_time, status, total_minutes, total_cost`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (scooter_id, user_id, tariff_id, start_time, status, total_minutes, total_cost)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.ScooterID, rt.UserID, rt.TariffID, rt.StartTime, rt.Status, rt.TotalMinutes, rt.TotalCost).Scan(&rt.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("rental of scooter %d", rt.ScooterID))
	}
	return nil
}

func (r *rentalRepository) GetActiveForUpdate(ctx context.Context, scooterID, userID int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE scooter_id = $1 AND user_id = $2 AND status = $3 FOR UPDATE`
	err := r.db.QueryRowContext(ctx, query, scooterID, userID, domain.RentalStatusActive).
		Scan(&rt.ID, &rt.ScooterID, &rt.UserID, &rt.TariffID, &rt.StartTime, &rt.EndTime, &rt.Status, &rt.TotalMinutes, &rt.TotalCost)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("active rental of scooter %d", scooterID))
	}
	return rt, nil
}

// Complete persists the end of an active rental. Completed rentals are never rewritten.
func (r *rentalRepository) Complete(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET end_time = $1, status = $2, total_minutes = $3, total_cost = $4
	          WHERE id = $5 AND status = $6`
	result, err := r.db.ExecContext(ctx, query, rt.EndTime, rt.Status, rt.TotalMinutes, rt.TotalCost, rt.ID, domain.RentalStatusActive)
	if err != nil {
		return translateError(err, fmt.Sprintf("rental %d", rt.ID))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: rental %d is not active", domain.ErrInvalidState, rt.ID)
	}
	return nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ScooterID, &rt.UserID, &rt.TariffID, &rt.StartTime, &rt.EndTime, &rt.Status, &rt.TotalMinutes, &rt.TotalCost); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
