// Package paymentcreate реализует HTTP-обработчик регистрации платежа.
//
// Платеж фиксируется со статусом pending для последующей ручной сверки,
// подписка при этом не меняется.
package paymentcreate

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

// Request — структура входных данных для регистрации платежа.
type Request struct {
	UserID        int64   `json:"user_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	SubType       string  `json:"sub_type" validate:"required"`
	Days          *int    `json:"days,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// SuccessResponse — структура успешного ответа на регистрацию платежа.
type SuccessResponse struct {
	Success   bool   `json:"success"`
	PaymentID int64  `json:"payment_id"`
	Status    string `json:"status"`
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	Create(ctx context.Context, params models.CreatePaymentParams) (int64, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию платежа.
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
// @Summary Регистрация платежа
// @Description Создает запись платежа со статусом pending.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные платежа"
// @Success 200 {object} SuccessResponse "Платеж зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.paymentcreate"

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

	id, err := h.service.Create(r.Context(), models.CreatePaymentParams{
		UserID:           req.UserID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		SubscriptionType: req.SubType,
		SubscriptionDays: req.Days,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, SuccessResponse{
		Success:   true,
		PaymentID: id,
		Status:    models.PaymentStatusPending,
	})
}
