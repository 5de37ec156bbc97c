package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Run запускает long-polling цикл получения обновлений и блокируется
// до отмены контекста. Используется, когда у процесса нет публичного
// URL и вебхук зарегистрировать нельзя.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram long polling started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("telegram long polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// RegisterWebhook регистрирует публичный URL, на который Telegram будет
// доставлять обновления. Вызывается один раз при старте с вебхуком.
func (b *Bot) RegisterWebhook(url string) error {
	const op = "bot.RegisterWebhook"

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.log.Info("telegram webhook registered", slog.String("url", url))
	return nil
}
