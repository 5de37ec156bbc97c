// Package paymentcomplete реализует HTTP-обработчик завершения платежа.
package paymentcomplete

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/diiateam/diia-backend/internal/http/response"
	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/models"
)

// Request — структура входных данных для завершения платежа.
type Request struct {
	PaymentID int64 `json:"payment_id" validate:"required"`
}

// SuccessResponse — структура успешного ответа с завершенным платежом.
type SuccessResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment *models.Payment `json:"payment"`
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	Complete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Payment, error)
}

// Handler обрабатывает HTTP-запросы на завершение платежа.
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
// @Summary Завершение платежа
// @Description Помечает платеж завершенным. Повторный вызов безвреден.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор платежа"
// @Success 200 {object} SuccessResponse "Платеж завершен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Платеж не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/payments/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.paymentcomplete"

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

	payment, err := h.service.Get(r.Context(), req.PaymentID)
	if err != nil {
		log.Error("failed to get payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if payment == nil {
		log.Info("payment not found", slog.Int64("payment_id", req.PaymentID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Платіж не знайдено"))
		return
	}

	if err := h.service.Complete(r.Context(), req.PaymentID); err != nil {
		log.Error("failed to complete payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	payment, err = h.service.Get(r.Context(), req.PaymentID)
	if err != nil {
		log.Error("failed to reread payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("payment completed", slog.Int64("payment_id", req.PaymentID))
	render.JSON(w, r, SuccessResponse{
		Success: true,
		Message: "Платіж завершено",
		Payment: payment,
	})
}
