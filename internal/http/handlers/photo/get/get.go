// Package get реализует HTTP-обработчик выдачи фото пользователя.
//
// Сам файл бэкенд не хранит: обработчик отвечает временным редиректом
// на URL внешнего хостинга, записанный при регистрации.
package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения профилей.
type Service interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на получение фото.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Фото пользователя
// @Description Отвечает редиректом 307 на URL фото на внешнем хостинге.
// @Tags User
// @Produce  json
// @Param user_id path int true "Числовой идентификатор пользователя"
// @Success 307 "Редирект на фото"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Фото не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/photo/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.photo.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		log.Info("invalid user id", slog.String("raw", chi.URLParam(r, "user_id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if user == nil || user.PhotoPath == nil || *user.PhotoPath == "" {
		log.Info("photo not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Фото не знайдено"))
		return
	}

	http.Redirect(w, r, *user.PhotoPath, http.StatusTemporaryRedirect)
}
