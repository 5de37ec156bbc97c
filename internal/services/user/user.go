// Package user содержит логику бизнес-уровня для чтения профилей пользователей.
package user

import (
	"context"
	"fmt"

	"github.com/diiateam/diia-backend/internal/models"
)

// Repository описывает контракт для чтения пользователей из базы данных.
type Repository interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Service предоставляет операции чтения профилей.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByLogin возвращает пользователя по логину или nil, если не найден.
func (s *Service) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "services.user.GetByLogin"

	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByID возвращает пользователя по идентификатору или nil, если не найден.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "services.user.GetByID"

	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListAll возвращает всех пользователей, начиная с последних зарегистрированных.
func (s *Service) ListAll(ctx context.Context) ([]*models.User, error) {
	const op = "services.user.ListAll"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
