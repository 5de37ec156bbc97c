package bot

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/diiateam/diia-backend/internal/lib/sl"
)

// Webhook возвращает HTTP-обработчик, принимающий обновления Telegram.
// Telegram ждет только код 200, тело ответа значения не имеет.
func (b *Bot) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.log.Error("failed to decode telegram update", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	}
}
