package models

import "time"

// Статусы платежа. Переход только pending -> completed,
// инициируется внешним вызовом.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment — запись о попытке оплаты. Журнал append-only: записи не
// удаляются, завершение лишь проставляет статус и completed_at.
// Завершение платежа само по себе не продлевает подписку.
type Payment struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentMethod    *string    `json:"payment_method,omitempty"`
	Status           string     `json:"status"`
	SubscriptionType string     `json:"subscription_type"`
	SubscriptionDays *int       `json:"subscription_days,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// CreatePaymentParams — входные данные для создания платежа.
type CreatePaymentParams struct {
	UserID           int64
	Amount           float64
	Currency         string
	SubscriptionType string
	SubscriptionDays *int
	PaymentMethod    *string
}
