package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/diiateam/diia-backend/internal/lib/password"
	"github.com/diiateam/diia-backend/internal/models"
)

const userColumns = `id, telegram_id, username, full_name, birth_date, photo_path,
			      login, password_hash, subscription_active, subscription_type,
			      subscription_until, last_login, registered_at, updated_at`

// CreateUser хэширует пароль и сохраняет нового пользователя, возвращая его ID.
// Нарушение уникальности login или telegram_id возвращается как ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, params models.CreateUserParams) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	hash, err := password.GetHash(params.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	var newID int64
	query := `INSERT INTO users (telegram_id, username, full_name, birth_date, photo_path,
			      login, password_hash, registered_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		params.TelegramID, params.Username, params.FullName, params.BirthDate,
		params.PhotoPath, params.Login, hash, now, now).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByLogin возвращает пользователя по логину.
// Отсутствие записи — не ошибка: возвращается (nil, nil).
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "storage.GetUserByLogin"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE login = $1`, login)
}

// GetUserByID возвращает пользователя по числовому идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByTelegramID возвращает пользователя по идентификатору Telegram-чата.
func (s *Storage) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	const op = "storage.GetUserByTelegramID"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, query, arg)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUser перезаписывает профиль пользователя по telegram_id.
// Пароль хэшируется заново безусловно, updated_at обновляется.
func (s *Storage) UpdateUser(ctx context.Context, params models.CreateUserParams) (bool, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	hash, err := password.GetHash(params.Password)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET full_name = $1, birth_date = $2, photo_path = $3,
			      login = $4, password_hash = $5, updated_at = $6
			  WHERE telegram_id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		params.FullName, params.BirthDate, params.PhotoPath,
		params.Login, hash, time.Now(), params.TelegramID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// UpdateLastLogin проставляет время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, id int64) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET last_login = $1 WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePhotoPath записывает URL загруженного фото. Вызывается после
// создания пользователя, когда известен его идентификатор.
func (s *Storage) UpdatePhotoPath(ctx context.Context, id int64, photoURL string) error {
	const op = "storage.UpdatePhotoPath"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET photo_path = $1, updated_at = $2 WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, photoURL, time.Now(), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateSubscription безусловно перезаписывает поля подписки.
// Хранилище не валидирует тариф и не сверяет until с текущим временем;
// флаг active никогда не сбрасывается по истечении срока автоматически.
func (s *Storage) UpdateSubscription(ctx context.Context, id int64, active bool, subType string, until *time.Time) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_active = $1, subscription_type = $2,
			      subscription_until = $3, updated_at = $4
			  WHERE id = $5`
	if _, err := s.DB.ExecContext(ctx, query, active, subType, until, time.Now(), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsers возвращает всех пользователей, новые первыми.
// Пагинации нет — вызывающая сторона получает всю таблицу.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// LoginExists проверяет занятость логина.
func (s *Storage) LoginExists(ctx context.Context, login string) (bool, error) {
	const op = "storage.LoginExists"
	return s.exists(ctx, op, `SELECT 1 FROM users WHERE login = $1`, login)
}

// TelegramIDExists проверяет, привязан ли telegram_id к пользователю.
func (s *Storage) TelegramIDExists(ctx context.Context, telegramID int64) (bool, error) {
	const op = "storage.TelegramIDExists"
	return s.exists(ctx, op, `SELECT 1 FROM users WHERE telegram_id = $1`, telegramID)
}

func (s *Storage) exists(ctx context.Context, op, query string, arg any) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var one int
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		username          sql.NullString
		photoPath         sql.NullString
		subscriptionUntil sql.NullTime
		lastLogin         sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.TelegramID, &username, &u.FullName, &u.BirthDate,
		&photoPath, &u.Login, &u.PasswordHash, &u.SubscriptionActive,
		&u.SubscriptionType, &subscriptionUntil, &lastLogin,
		&u.RegisteredAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if username.Valid {
		u.Username = &username.String
	}
	if photoPath.Valid {
		u.PhotoPath = &photoPath.String
	}
	if subscriptionUntil.Valid {
		u.SubscriptionUntil = &subscriptionUntil.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}
