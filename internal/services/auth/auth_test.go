package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diiateam/diia-backend/internal/lib/jwt"
	"github.com/diiateam/diia-backend/internal/lib/password"
	"github.com/diiateam/diia-backend/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newService(repo *MockRepository) *Service {
	maker := jwt.NewMaker("test-secret", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, maker, log)
}

func testUser(t *testing.T, login, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		TelegramID:   100,
		Login:        login,
		PasswordHash: hash,
		FullName:     "Олена Петренко",
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockRepository)
	user := testUser(t, "olena", "secret1")
	repo.On("GetUserByLogin", mock.Anything, "olena").Return(user, nil)
	repo.On("UpdateLastLogin", mock.Anything, int64(1)).Return(nil)

	got, token, err := newService(repo).Login(context.Background(), "olena", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.NotEmpty(t, token)
	repo.AssertExpectations(t)
}

func TestLogin_UnknownLogin(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByLogin", mock.Anything, "ghost").Return(nil, nil)

	_, _, err := newService(repo).Login(context.Background(), "ghost", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByLogin", mock.Anything, "olena").Return(testUser(t, "olena", "secret1"), nil)

	_, _, err := newService(repo).Login(context.Background(), "olena", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByLogin", mock.Anything, "olena").Return(nil, errors.New("db down"))

	_, _, err := newService(repo).Login(context.Background(), "olena", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LastLoginFailureDoesNotBlock(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByLogin", mock.Anything, "olena").Return(testUser(t, "olena", "secret1"), nil)
	repo.On("UpdateLastLogin", mock.Anything, int64(1)).Return(errors.New("db down"))

	_, token, err := newService(repo).Login(context.Background(), "olena", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
