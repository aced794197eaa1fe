package postgres

import (
	"context"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type scooterRepository struct {
	db DBTX
}

func NewScooterRepository(db DBTX) repository.ScooterRepository {
	return &scooterRepository{db: db}
}

const scooterColumns = `id, status, battery_level, created_on`

func (r *scooterRepository) Create(ctx context.Context, s *domain.Scooter) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.CreatedOn = time.Now()
	query := `INSERT INTO scooters (id, status, battery_level, created_on) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Status, s.BatteryLevel, s.CreatedOn)
	if err != nil {
		return translateError(err, fmt.Sprintf("scooter %d", s.ID))
	}
	return nil
}

func (r *scooterRepository) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	return r.get(ctx, `SELECT `+scooterColumns+` FROM scooters WHERE id = $1`, id)
}

// GetForUpdate blocks until no other transaction holds the scooter row.
func (r *scooterRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Scooter, error) {
	return r.get(ctx, `SELECT `+scooterColumns+` FROM scooters WHERE id = $1 FOR UPDATE`, id)
}

func (r *scooterRepository) get(ctx context.Context, query string, id int32) (*domain.Scooter, error) {
	s := &domain.Scooter{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Status, &s.BatteryLevel, &s.CreatedOn)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("scooter %d", id))
	}
	return s, nil
}

func (r *scooterRepository) SetStatus(ctx context.Context, id int32, status domain.ScooterStatus) error {
	query := `UPDATE scooters SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("scooter %d", id))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: scooter %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *scooterRepository) List(ctx context.Context) ([]domain.Scooter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+scooterColumns+` FROM scooters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scooters []domain.Scooter
	for rows.Next() {
		var s domain.Scooter
		if err := rows.Scan(&s.ID, &s.Status, &s.BatteryLevel, &s.CreatedOn); err != nil {
			return nil, err
		}
		scooters = append(scooters, s)
	}
	return scooters, rows.Err()
}
