package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"scooter-sharing-backend/internal/domain"
)

const uniqueViolation pq.ErrorCode = "23505"

// translateError maps driver errors onto the domain taxonomy.
// Unique violations come from the partial indexes that keep at most one active
// reservation or rental per scooter and per user.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s conflicts with %s", domain.ErrNotAvailable, what, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", what, err)
}
