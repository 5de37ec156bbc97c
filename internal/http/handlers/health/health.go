// Package health реализует служебные HTTP-обработчики проверки живости.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Status godoc
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string "Сервис работает"
// @Router /api/health [get]
func Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// KeepAlive отвечает коротким текстом. Эндпоинт дергают внешние
// пинговалки, чтобы хостинг не усыплял процесс.
func KeepAlive(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "Bot is alive")
}
