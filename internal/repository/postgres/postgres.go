package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"scooter-sharing-backend/internal/logger"
	"scooter-sharing-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// either on the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q DBTX) repository.Repositories {
	return repository.Repositories{
		Users:        NewUserRepository(q),
		Scooters:     NewScooterRepository(q),
		Tariffs:      NewTariffRepository(q),
		Reservations: NewReservationRepository(q),
		Rentals:      NewRentalRepository(q),
		Payments:     NewPaymentRepository(q),
	}
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	logger.DatabaseCall("transaction", "BEGIN")
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.DatabaseResult("transaction", 0, err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr, "cause", err)
		}
		logger.Debug("Transaction rolled back", "cause", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.DatabaseResult("transaction", 0, err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	logger.DatabaseResult("transaction", 0, nil)
	return nil
}

var _ repository.Transactor = (*Store)(nil)
