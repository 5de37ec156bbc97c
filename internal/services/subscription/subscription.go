// Package subscription содержит логику бизнес-уровня для управления подписками.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/diiateam/diia-backend/internal/models"
	"github.com/diiateam/diia-backend/internal/storage/repository"
)

// UserRepository описывает контракт для работы с подписками в базе данных.
type UserRepository interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateSubscription(ctx context.Context, userID int64, active bool, subType string, until *time.Time) error
}

// Service предоставляет операции выдачи и изменения подписок.
type Service struct {
	repo UserRepository
}

// New создает новый экземпляр Service.
func New(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// Grant включает пользователю подписку заданного типа. Если days не задан
// или равен нулю, подписка бессрочная, иначе истекает через days дней.
// Возвращает пользователя и срок действия подписки.
func (s *Service) Grant(ctx context.Context, login, subType string, days *int) (*models.User, *time.Time, error) {
	const op = "services.subscription.Grant"

	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var until *time.Time
	if days != nil && *days > 0 {
		t := time.Now().AddDate(0, 0, *days)
		until = &t
	}

	if err := s.repo.UpdateSubscription(ctx, user.ID, true, subType, until); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, until, nil
}

// Update выставляет поля подписки пользователя напрямую, без пересчета срока.
func (s *Service) Update(ctx context.Context, userID int64, active bool, subType string, until *time.Time) error {
	const op = "services.subscription.Update"

	if err := s.repo.UpdateSubscription(ctx, userID, active, subType, until); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
