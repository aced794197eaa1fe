package postgres

import (
	"context"
	"fmt"
	"time"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type tariffRepository struct {
	db DBTX
}

func NewTariffRepository(db DBTX) repository.TariffRepository {
	return &tariffRepository{db: db}
}

const tariffColumns = `id, name, per_minute, created_on`

func (r *tariffRepository) Create(ctx context.Context, t *domain.Tariff) error {
	if t.Name == "" {
		t.Name = domain.DefaultTariffName
	}
	t.CreatedOn = time.Now()
	query := `INSERT INTO tariffs (name, per_minute, created_on) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.Name, t.PerMinute, t.CreatedOn).Scan(&t.ID)
}

func (r *tariffRepository) GetByID(ctx context.Context, id int32) (*domain.Tariff, error) {
	t := &domain.Tariff{}
	query := `SELECT ` + tariffColumns + ` FROM tariffs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.PerMinute, &t.CreatedOn)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("tariff %d", id))
	}
	return t, nil
}

func (r *tariffRepository) GetDefault(ctx context.Context) (*domain.Tariff, error) {
	t := &domain.Tariff{}
	query := `SELECT ` + tariffColumns + ` FROM tariffs ORDER BY created_on, id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&t.ID, &t.Name, &t.PerMinute, &t.CreatedOn)
	if err != nil {
		return nil, translateError(err, "default tariff")
	}
	return t, nil
}

func (r *tariffRepository) List(ctx context.Context) ([]domain.Tariff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tariffColumns+` FROM tariffs ORDER BY created_on, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tariffs []domain.Tariff
	for rows.Next() {
		var t domain.Tariff
		if err := rows.Scan(&t.ID, &t.Name, &t.PerMinute, &t.CreatedOn); err != nil {
			return nil, err
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}
