package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diiateam/diia-backend/internal/models"
)

func TestStorage_PaymentLifecycle(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	userID, err := storage.CreateUser(ctx, testUserParams("alice", 100))
	require.NoError(t, err)

	days := 30
	id, err := storage.CreatePayment(ctx, models.CreatePaymentParams{
		UserID:           userID,
		Amount:           9.99,
		Currency:         "USD",
		SubscriptionType: "преміум",
		SubscriptionDays: &days,
	})
	require.NoError(t, err)

	p, err := storage.GetPayment(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.InDelta(t, 9.99, p.Amount, 0.001)
	assert.Equal(t, "USD", p.Currency)
	assert.Nil(t, p.PaymentMethod)
	require.NotNil(t, p.SubscriptionDays)
	assert.Equal(t, 30, *p.SubscriptionDays)
	assert.Nil(t, p.CompletedAt)

	require.NoError(t, storage.CompletePayment(ctx, id))

	p, err = storage.GetPayment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
	assert.WithinDuration(t, time.Now(), *p.CompletedAt, 5*time.Second)

	// Повторное завершение не ошибка и оставляет статус completed
	require.NoError(t, storage.CompletePayment(ctx, id))
	p, err = storage.GetPayment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
}

func TestStorage_GetPaymentAbsent(t *testing.T) {
	storage := setupTestStorage(t)

	p, err := storage.GetPayment(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, p)
}
