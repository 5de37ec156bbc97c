package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SaveRegistrationState сохраняет шаг анкеты и накопленные данные по
// telegram_id. Повторное сохранение полностью заменяет прежнюю запись:
// вызывающая сторона каждый раз передаёт весь payload целиком.
func (s *Storage) SaveRegistrationState(ctx context.Context, telegramID int64, step string, payload map[string]string) error {
	const op = "storage.SaveRegistrationState"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO registration_temp (telegram_id, state, data, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (telegram_id) DO UPDATE
			  SET state = $2, data = $3, created_at = $4`
	if _, err := s.DB.ExecContext(ctx, query, telegramID, step, string(data), time.Now()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRegistrationState возвращает текущий шаг и payload анкеты.
// Отсутствие записи — не ошибка: возвращается пустой шаг и пустой payload.
func (s *Storage) GetRegistrationState(ctx context.Context, telegramID int64) (string, map[string]string, error) {
	const op = "storage.GetRegistrationState"
	select {
	case <-ctx.Done():
		return "", nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT state, data FROM registration_temp WHERE telegram_id = $1`
	var (
		step string
		data sql.NullString
	)
	err := s.DB.QueryRowContext(ctx, query, telegramID).Scan(&step, &data)
	if err == sql.ErrNoRows {
		return "", map[string]string{}, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	payload := map[string]string{}
	if data.Valid && data.String != "" {
		if err := json.Unmarshal([]byte(data.String), &payload); err != nil {
			return "", nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return step, payload, nil
}

// ClearRegistrationState удаляет состояние анкеты. Идемпотентна:
// отсутствие записи не считается ошибкой.
func (s *Storage) ClearRegistrationState(ctx context.Context, telegramID int64) error {
	const op = "storage.ClearRegistrationState"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM registration_temp WHERE telegram_id = $1`
	if _, err := s.DB.ExecContext(ctx, query, telegramID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
