package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type reservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, scooter_id, user_id, start_time, expires_at, is_active`

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (scooter_id, user_id, start_time, expires_at, is_active)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, res.ScooterID, res.UserID, res.StartTime, res.ExpiresAt, res.IsActive).Scan(&res.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("reservation of scooter %d", res.ScooterID))
	}
	return nil
}

func (r *reservationRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.get(ctx, fmt.Sprintf("reservation %d", id), query, id)
}

func (r *reservationRepository) GetActiveByScooterForUpdate(ctx context.Context, scooterID int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE scooter_id = $1 AND is_active ORDER BY id LIMIT 1 FOR UPDATE`
	return r.get(ctx, fmt.Sprintf("active reservation of scooter %d", scooterID), query, scooterID)
}

func (r *reservationRepository) get(ctx context.Context, what, query string, args ...any) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.ScooterID, &res.UserID, &res.StartTime, &res.ExpiresAt, &res.IsActive)
	if err != nil {
		return nil, translateError(err, what)
	}
	return res, nil
}

func (r *reservationRepository) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE user_id = $1 AND is_active ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *reservationRepository) ListExpired(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE is_active AND expires_at < $1 ORDER BY expires_at`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *reservationRepository) Deactivate(ctx context.Context, id int32) (bool, error) {
	query := `UPDATE reservations SET is_active = false WHERE id = $1 AND is_active`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, translateError(err, fmt.Sprintf("reservation %d", id))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func scanReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.ScooterID, &res.UserID, &res.StartTime, &res.ExpiresAt, &res.IsActive); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
