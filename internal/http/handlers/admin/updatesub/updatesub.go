// Package updatesub реализует HTTP-обработчик прямого изменения полей подписки.
//
// В отличие от выдачи подписки по логину, здесь срок передается готовой
// датой в ISO-8601 и записывается как есть, без пересчета.
package updatesub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
)

// untilLayouts — принимаемые варианты ISO-8601: полная метка с зоной,
// без зоны и голая дата.
var untilLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseUntil(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range untilLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Request — структура входных данных для изменения подписки.
// Until в формате ISO-8601, пустая строка — бессрочно.
type Request struct {
	UserID  int64  `json:"user_id" validate:"required"`
	Active  bool   `json:"active"`
	SubType string `json:"sub_type" validate:"required"`
	Until   string `json:"until,omitempty"`
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Update(ctx context.Context, userID int64, active bool, subType string, until *time.Time) error
}

// Handler обрабатывает HTTP-запросы на изменение подписки.
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
// @Summary Изменение подписки
// @Description Выставляет поля подписки пользователя напрямую.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Поля подписки"
// @Success 200 {object} response.Response "Подписка обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или формат даты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/update-subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.updatesub"

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

	var until *time.Time
	if req.Until != "" {
		parsed, err := parseUntil(req.Until)
		if err != nil {
			log.Info("malformed until date", slog.String("until", req.Until))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Невірний формат дати"))
			return
		}
		until = &parsed
	}

	if err := h.service.Update(r.Context(), req.UserID, req.Active, req.SubType, until); err != nil {
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("subscription updated",
		slog.Int64("user_id", req.UserID), slog.Bool("active", req.Active))
	render.JSON(w, r, response.OK("Підписку оновлено"))
}
