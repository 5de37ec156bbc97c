package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diiateam/diia-backend/internal/migrations"
	"github.com/diiateam/diia-backend/internal/models"
)

// setupTestStorage поднимает SQLite-базу во временном каталоге
// и применяет к ней миграции.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	storage, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.Close()
	})

	err = migrations.Run(storage.DB, string(storage.Engine), "../../../migrations/sqlite")
	require.NoError(t, err)

	return storage
}

func testUserParams(login string, telegramID int64) models.CreateUserParams {
	username := "tg_" + login
	return models.CreateUserParams{
		TelegramID: telegramID,
		Username:   &username,
		FullName:   "Тестовий Користувач",
		BirthDate:  "01.01.2000",
		Login:      login,
		Password:   "secret1",
	}
}
