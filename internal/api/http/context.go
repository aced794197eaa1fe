package http

import (
	"context"
	"fmt"

	"scooter-sharing-backend/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user-id"

func WithUserID(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the caller placed in the context by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	userID, ok := ctx.Value(userIDKey).(int32)
	if !ok || userID <= 0 {
		return 0, fmt.Errorf("%w: no authenticated user", domain.ErrAuthentication)
	}
	return userID, nil
}
