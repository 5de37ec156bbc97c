// Package auth содержит логику бизнес-уровня для аутентификации пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/diiateam/diia-backend/internal/lib/jwt"
	"github.com/diiateam/diia-backend/internal/lib/password"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// ErrInvalidCredentials возвращается и для неизвестного логина, и для
// неверного пароля, чтобы ответ не раскрывал, какие логины существуют.
var ErrInvalidCredentials = errors.New("invalid login or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByLogin возвращает пользователя по логину или nil, если не найден.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// UpdateLastLogin отмечает время последнего входа пользователя.
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// Service отвечает за проверку учетных данных и выпуск JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Login проверяет пару логин-пароль и возвращает пользователя вместе с JWT.
// Отметка last_login обновляется по принципу best effort: ее ошибка
// логируется и не срывает уже успешный вход.
func (s *Service) Login(ctx context.Context, login, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	ok, err := password.Verify(user.PasswordHash, rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Login, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("failed to update last login",
			slog.String("login", user.Login), sl.Err(err))
	}

	return user, token, nil
}
