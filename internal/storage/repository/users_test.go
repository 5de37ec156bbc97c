package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diiateam/diia-backend/internal/lib/password"
)

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	id, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := storage.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(100), got.TelegramID)
	assert.Equal(t, "Тестовий Користувач", got.FullName)
	assert.False(t, got.SubscriptionActive)
	assert.Equal(t, "безкоштовна", got.SubscriptionType)
	assert.Nil(t, got.SubscriptionUntil)
	assert.Nil(t, got.LastLogin)

	// Пароль никогда не хранится открытым текстом
	assert.NotEqual(t, "secret1", got.PasswordHash)
	ok, err := password.Verify(got.PasswordHash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = password.Verify(got.PasswordHash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	byID, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Login)

	byTg, err := storage.GetUserByTelegramID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, byTg)
	assert.Equal(t, "alice", byTg.Login)
}

func TestStorage_GetUserAbsent(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	got, err := storage.GetUserByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	byID, err := storage.GetUserByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, byID)
}

func TestStorage_CreateUserConflict(t *testing.T) {
	tests := []struct {
		name        string
		secondLogin string
		secondTg    int64
	}{
		{
			name:        "duplicate login",
			secondLogin: "alice",
			secondTg:    200,
		},
		{
			name:        "duplicate telegram id",
			secondLogin: "bob",
			secondTg:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := setupTestStorage(t)
			ctx := context.Background()

			_, err := storage.CreateUser(ctx, testUserParams("alice", 100))
			require.NoError(t, err)

			_, err = storage.CreateUser(ctx, testUserParams(tt.secondLogin, tt.secondTg))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConflict))
		})
	}
}

func TestStorage_UpdateLastLogin(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	id, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	require.NoError(t, storage.UpdateLastLogin(ctx, id))

	got, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, time.Now(), *got.LastLogin, 5*time.Second)
}

func TestStorage_UpdateSubscription(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	id, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storage.UpdateSubscription(ctx, id, true, "преміум", &until))

	got, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.SubscriptionActive)
	assert.Equal(t, "преміум", got.SubscriptionType)
	require.NotNil(t, got.SubscriptionUntil)
	assert.Equal(t, until.Unix(), got.SubscriptionUntil.Unix())

	// Бессрочная подписка: until = nil
	require.NoError(t, storage.UpdateSubscription(ctx, id, true, "преміум", nil))
	got, err = storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.SubscriptionUntil)

	// Истёкший until хранилище не трогает: active остаётся как записано
	past := time.Now().AddDate(0, 0, -30)
	require.NoError(t, storage.UpdateSubscription(ctx, id, true, "преміум", &past))
	got, err = storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.SubscriptionActive)
}

func TestStorage_UpdateUserRehashesPassword(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	_, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	before, err := storage.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)

	params := testUserParams("alice", 100)
	params.FullName = "Нове Імʼя"
	params.Password = "secret2"
	updated, err := storage.UpdateUser(ctx, params)
	require.NoError(t, err)
	assert.True(t, updated)

	after, err := storage.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Нове Імʼя", after.FullName)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	ok, err := password.Verify(after.PasswordHash, "secret2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorage_ListUsersNewestFirst(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	_, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, testUserParams("bob", 200))
	require.NoError(t, err)

	users, err := storage.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Login)
	assert.Equal(t, "alice", users[1].Login)
}

func TestStorage_Exists(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	_, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	ok, err := storage.LoginExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = storage.LoginExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = storage.TelegramIDExists(ctx, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = storage.TelegramIDExists(ctx, 200)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_UpdatePhotoPath(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	id, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	url := "https://res.cloudinary.com/demo/image/upload/diia_photos/user_1"
	require.NoError(t, storage.UpdatePhotoPath(ctx, id, url))

	got, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.PhotoPath)
	assert.Equal(t, url, *got.PhotoPath)
}
