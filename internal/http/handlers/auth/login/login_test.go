package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diiateam/diia-backend/internal/models"
	"github.com/diiateam/diia-backend/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	args := m.Called(ctx, login, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockUser       *models.User
		mockToken      string
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Login: "olena", Password: "secret1"},
			mockUser:       &models.User{ID: 1, Login: "olena", FullName: "Олена Петренко"},
			mockToken:      "tok",
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Вхід виконано успішно",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Login: "olena"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Password is a required field",
		},
		{
			name:           "invalid credentials",
			requestBody:    Request{Login: "olena", Password: "wrongpass"},
			mockErr:        auth.ErrInvalidCredentials,
			mockCalled:     true,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Невірний логін або пароль",
		},
		{
			name:           "internal error",
			requestBody:    Request{Login: "olena", Password: "secret1"},
			mockErr:        errors.New("db down"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockCalled {
				serviceMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockToken, tt.mockErr)
			}
			handler := New(newNoopLogger(), serviceMock)

			var body bytes.Buffer
			require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", &body)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Contains(t, got["message"], tt.wantMessage)

			if tt.wantStatusCode == http.StatusOK {
				assert.Equal(t, true, got["success"])
				assert.Equal(t, "tok", got["token"])
				user := got["user"].(map[string]any)
				assert.Equal(t, "olena", user["login"])
				assert.NotContains(t, user, "password_hash")
				assert.NotContains(t, user, "telegram_id")
				assert.NotContains(t, user, "photo_url")
			} else {
				assert.Equal(t, false, got["success"])
			}
		})
	}
}
