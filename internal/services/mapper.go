package services

import (
	"context"
	"time"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

const dateLayout = "2006-01-02"
const dateTimeLayout = "2006-01-02 15:04:05"

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат даты: %s", *value)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// userIDFromContext достает идентификатор текущего пользователя,
// положенный туда auth-middleware.
func userIDFromContext(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int)
	if !ok || userID <= 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return uint64(userID), nil
}
