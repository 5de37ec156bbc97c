// Package get реализует HTTP-обработчик выдачи профиля пользователя по логину.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения профилей.
type Service interface {
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на чтение профиля.
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
// @Summary Профиль пользователя
// @Description Возвращает профиль пользователя по логину без хэша пароля.
// @Tags User
// @Produce  json
// @Param login path string true "Логин пользователя"
// @Success 200 {object} response.ProfileView "Профиль пользователя"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/user/{login} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	login := chi.URLParam(r, "login")

	user, err := h.service.GetByLogin(r.Context(), login)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if user == nil {
		log.Info("user not found", slog.String("login", login))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Користувач не знайдений"))
		return
	}

	render.JSON(w, r, response.NewProfileView(user))
}
