// Package grantsub реализует HTTP-обработчик выдачи подписки пользователю по логину.
package grantsub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
	"github.com/diiateam/diia-backend/internal/storage/repository"
)

// Request — структура входных данных для выдачи подписки.
// Days не задан или равен нулю — подписка бессрочная.
type Request struct {
	Login   string `json:"login" validate:"required"`
	SubType string `json:"sub_type" validate:"required"`
	Days    *int   `json:"days,omitempty"`
}

// SuccessResponse — структура успешного ответа на выдачу подписки.
type SuccessResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Login   string     `json:"login"`
	SubType string     `json:"sub_type"`
	Until   *time.Time `json:"until"`
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Grant(ctx context.Context, login, subType string, days *int) (*models.User, *time.Time, error)
}

// Handler обрабатывает HTTP-запросы на выдачу подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдача подписки
// @Description Включает пользователю подписку заданного типа на days дней или бессрочно.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Логин, тип подписки и срок в днях"
// @Success 200 {object} SuccessResponse "Подписка выдана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/grant-subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.grantsub"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, until, err := h.service.Grant(r.Context(), req.Login, req.SubType, req.Days)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", slog.String("login", req.Login))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Користувач не знайдений"))
			return
		}
		log.Error("failed to grant subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("subscription granted",
		slog.String("login", user.Login), slog.String("sub_type", req.SubType))
	render.JSON(w, r, SuccessResponse{
		Success: true,
		Message: "Підписку активовано",
		Login:   user.Login,
		SubType: req.SubType,
		Until:   until,
	})
}
