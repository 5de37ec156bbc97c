// Package listusers реализует HTTP-обработчик выдачи списка всех пользователей.
package listusers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения профилей.
type Service interface {
	ListAll(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает HTTP-запросы на список пользователей.
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
// @Summary Список пользователей
// @Description Возвращает всех пользователей, начиная с последних зарегистрированных.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, map[string]any{
		"users": response.NewUserViews(users),
	})
}
