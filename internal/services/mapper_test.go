package services

import (
	"context"
	"testing"
	"time"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("nil и пустая строка дают nil", func(t *testing.T) {
		parsed, err := parseDate(nil)
		assert.NoError(t, err)
		assert.Nil(t, parsed)

		parsed, err = parseDate(utils.StringPtr(""))
		assert.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("корректная дата", func(t *testing.T) {
		parsed, err := parseDate(utils.StringPtr("2026-03-01"))
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *parsed)
	})

	t.Run("неверный формат", func(t *testing.T) {
		_, err := parseDate(utils.StringPtr("01.03.2026"))
		assert.Error(t, err)
	})
}

func TestFormatDate(t *testing.T) {
	assert.Nil(t, formatDate(nil))

	d := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	formatted := formatDate(&d)
	require.NotNil(t, formatted)
	assert.Equal(t, "2026-03-01", *formatted)
}

func TestUserIDFromContext(t *testing.T) {
	t.Run("идентификатор присутствует", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, 7)
		id, err := userIDFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), id)
	})

	t.Run("пустой контекст", func(t *testing.T) {
		_, err := userIDFromContext(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
	})
}
