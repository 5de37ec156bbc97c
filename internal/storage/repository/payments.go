package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/diiateam/diia-backend/internal/models"
)

// CreatePayment вставляет запись о попытке оплаты со статусом pending
// и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, params models.CreatePaymentParams) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, amount, currency, payment_method, status,
			      subscription_type, subscription_days, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		params.UserID, params.Amount, params.Currency, params.PaymentMethod,
		models.PaymentStatusPending, params.SubscriptionType, params.SubscriptionDays,
		time.Now()).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CompletePayment проставляет статус completed и время завершения.
// Повторный вызов просто перезаписывает те же поля; связывание
// завершённого платежа с подпиской — забота вызывающей стороны.
func (s *Storage) CompletePayment(ctx context.Context, id int64) error {
	const op = "storage.CompletePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1, completed_at = $2
			  WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, models.PaymentStatusCompleted, time.Now(), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetPayment возвращает платёж по ID либо (nil, nil), если записи нет.
func (s *Storage) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	const op = "storage.GetPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, amount, currency, payment_method, status,
			      subscription_type, subscription_days, created_at, completed_at
			  FROM payments WHERE id = $1`
	p := &models.Payment{}
	var (
		method      sql.NullString
		days        sql.NullInt64
		completedAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Amount,
		&p.Currency, &method, &p.Status, &p.SubscriptionType, &days,
		&p.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if method.Valid {
		p.PaymentMethod = &method.String
	}
	if days.Valid {
		d := int(days.Int64)
		p.SubscriptionDays = &d
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	return p, nil
}
