// Package registration содержит логику бизнес-уровня пошаговой регистрации
// пользователя через телеграм-бота.
//
// Состояние между шагами хранится в базе, поэтому диалог переживает
// перезапуск процесса. Завершение регистрации атомарным не является:
// сначала создается запись пользователя, затем загружается фото и его
// URL дописывается отдельным запросом.
package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// Шаги диалога регистрации.
const (
	StepName      = "waiting_name"
	StepBirthDate = "waiting_birthdate"
	StepPhoto     = "waiting_photo"
	StepLogin     = "waiting_login"
	StepPassword  = "waiting_password"
)

// Ключи накопленных ответов в payload состояния регистрации.
const (
	KeyFullName  = "full_name"
	KeyBirthDate = "birth_date"
	KeyPhotoFile = "photo_file"
	KeyLogin     = "login"
	KeyPassword  = "password"
)

// Repository описывает контракт хранилища для регистрации.
type Repository interface {
	SaveRegistrationState(ctx context.Context, telegramID int64, step string, payload map[string]string) error
	GetRegistrationState(ctx context.Context, telegramID int64) (string, map[string]string, error)
	ClearRegistrationState(ctx context.Context, telegramID int64) error

	CreateUser(ctx context.Context, params models.CreateUserParams) (int64, error)
	UpdatePhotoPath(ctx context.Context, userID int64, photoPath string) error
	LoginExists(ctx context.Context, login string) (bool, error)
	TelegramIDExists(ctx context.Context, telegramID int64) (bool, error)
}

// PhotoHost загружает фото пользователя на внешний хостинг.
type PhotoHost interface {
	Upload(ctx context.Context, filePath string, userID int64) (string, error)
}

// Service управляет состоянием диалога и завершением регистрации.
type Service struct {
	repo   Repository
	photos PhotoHost
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, photos PhotoHost, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		log:    log,
	}
}

// SaveStep сохраняет текущий шаг диалога вместе с накопленными ответами.
func (s *Service) SaveStep(ctx context.Context, telegramID int64, step string, payload map[string]string) error {
	const op = "services.registration.SaveStep"

	if err := s.repo.SaveRegistrationState(ctx, telegramID, step, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// State возвращает текущий шаг и накопленные ответы. Для чата без
// активной регистрации шаг пустой.
func (s *Service) State(ctx context.Context, telegramID int64) (string, map[string]string, error) {
	const op = "services.registration.State"

	step, payload, err := s.repo.GetRegistrationState(ctx, telegramID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return step, payload, nil
}

// Cancel прерывает диалог и удаляет накопленное состояние.
func (s *Service) Cancel(ctx context.Context, telegramID int64) error {
	const op = "services.registration.Cancel"

	if err := s.repo.ClearRegistrationState(ctx, telegramID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRegistered сообщает, привязан ли телеграм-чат к существующему пользователю.
func (s *Service) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	const op = "services.registration.IsRegistered"

	exists, err := s.repo.TelegramIDExists(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// LoginTaken проверяет, занят ли логин другим пользователем.
func (s *Service) LoginTaken(ctx context.Context, login string) (bool, error) {
	const op = "services.registration.LoginTaken"

	exists, err := s.repo.LoginExists(ctx, login)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// Complete создает пользователя из накопленных ответов, загружает его фото
// и очищает состояние диалога. Ошибка загрузки фото прерывает завершение:
// состояние остается в базе, и пользователь может повторить последний шаг.
func (s *Service) Complete(ctx context.Context, telegramID int64, username *string, payload map[string]string) (int64, error) {
	const op = "services.registration.Complete"

	userID, err := s.repo.CreateUser(ctx, models.CreateUserParams{
		TelegramID: telegramID,
		Username:   username,
		FullName:   payload[KeyFullName],
		BirthDate:  payload[KeyBirthDate],
		Login:      payload[KeyLogin],
		Password:   payload[KeyPassword],
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if photoFile := payload[KeyPhotoFile]; photoFile != "" {
		photoURL, err := s.photos.Upload(ctx, photoFile, userID)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.repo.UpdatePhotoPath(ctx, userID, photoURL); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.repo.ClearRegistrationState(ctx, telegramID); err != nil {
		s.log.Warn("failed to clear registration state",
			slog.Int64("telegram_id", telegramID), sl.Err(err))
	}

	s.log.Info("registration completed",
		slog.Int64("telegram_id", telegramID), slog.Int64("user_id", userID))

	return userID, nil
}
