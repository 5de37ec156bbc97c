// Package payment содержит логику бизнес-уровня для учета платежей.
//
// Платеж фиксируется как запись для ручной сверки: его завершение
// не включает подписку автоматически, это делает оператор отдельным
// запросом к выдаче подписки.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diiateam/diia-backend/internal/models"
)

// Repository описывает контракт для работы с платежами в базе данных.
type Repository interface {
	CreatePayment(ctx context.Context, params models.CreatePaymentParams) (int64, error)
	CompletePayment(ctx context.Context, id int64) error
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
}

// Service предоставляет операции учета платежей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create регистрирует новый платеж со статусом pending и возвращает его ID.
func (s *Service) Create(ctx context.Context, params models.CreatePaymentParams) (int64, error) {
	const op = "services.payment.Create"

	id, err := s.repo.CreatePayment(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment registered",
		slog.Int64("payment_id", id),
		slog.Int64("user_id", params.UserID),
		slog.Float64("amount", params.Amount),
		slog.String("currency", params.Currency))

	return id, nil
}

// Complete помечает платеж завершенным. Повторный вызов безвреден.
func (s *Service) Complete(ctx context.Context, id int64) error {
	const op = "services.payment.Complete"

	if err := s.repo.CompletePayment(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get возвращает платеж по ID или nil, если не найден.
func (s *Service) Get(ctx context.Context, id int64) (*models.Payment, error) {
	const op = "services.payment.Get"

	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
