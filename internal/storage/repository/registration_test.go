package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_RegistrationStateRoundTrip(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	step, payload, err := storage.GetRegistrationState(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, step)
	assert.Empty(t, payload)

	err = storage.SaveRegistrationState(ctx, 100, "waiting_name", map[string]string{
		"full_name": "Олена Петренко",
	})
	require.NoError(t, err)

	step, payload, err = storage.GetRegistrationState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "waiting_name", step)
	assert.Equal(t, map[string]string{"full_name": "Олена Петренко"}, payload)
}

func TestStorage_RegistrationStateReplaces(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	err := storage.SaveRegistrationState(ctx, 100, "waiting_birthdate", map[string]string{
		"full_name": "Олена Петренко",
	})
	require.NoError(t, err)

	// Повторное сохранение полностью заменяет payload, а не дополняет его
	err = storage.SaveRegistrationState(ctx, 100, "waiting_login", map[string]string{
		"birth_date": "01.01.2000",
	})
	require.NoError(t, err)

	step, payload, err := storage.GetRegistrationState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "waiting_login", step)
	assert.Equal(t, map[string]string{"birth_date": "01.01.2000"}, payload)
	assert.NotContains(t, payload, "full_name")
}

func TestStorage_RegistrationStateIsolatedByTelegramID(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveRegistrationState(ctx, 100, "waiting_name", map[string]string{}))
	require.NoError(t, storage.SaveRegistrationState(ctx, 200, "waiting_photo", map[string]string{}))

	step, _, err := storage.GetRegistrationState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "waiting_name", step)

	step, _, err = storage.GetRegistrationState(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, "waiting_photo", step)
}

func TestStorage_ClearRegistrationStateIdempotent(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveRegistrationState(ctx, 100, "waiting_name", map[string]string{
		"full_name": "Олена Петренко",
	}))

	require.NoError(t, storage.ClearRegistrationState(ctx, 100))

	step, payload, err := storage.GetRegistrationState(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, step)
	assert.Empty(t, payload)

	// Повторная очистка отсутствующей записи не ошибка
	require.NoError(t, storage.ClearRegistrationState(ctx, 100))
}
