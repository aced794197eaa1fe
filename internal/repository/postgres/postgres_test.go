package postgres_test

import (
	"context"
	"errors"
	"testing"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
	"scooter-sharing-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE scooters SET status").
			WithArgs(domain.ScooterStatusReserved, int32(546)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return repos.Scooters.SetStatus(ctx, 546, domain.ScooterStatusReserved)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		cause := errors.New("gateway down")
		err = store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return cause
		})
		assert.ErrorIs(t, err, cause)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on panic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := postgres.NewStore(db)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err = store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}
