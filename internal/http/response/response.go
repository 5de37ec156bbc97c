// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/diiateam/diia-backend/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success — признак успеха запроса.
// Поле Message — человеко-читаемое сообщение (опционально).
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
}

// OK возвращает успешный Response с переданным сообщением.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: msg,
	}
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(errsMsgs, ", "),
	}
}

// ProfileView — публичная проекция профиля для GET /api/user/{login}.
// Внутренние идентификаторы и логин наружу не отдаются.
type ProfileView struct {
	FullName           string     `json:"full_name"`
	BirthDate          string     `json:"birth_date"`
	PhotoURL           *string    `json:"photo_url"`
	LastLogin          *time.Time `json:"last_login"`
	SubscriptionActive bool       `json:"subscription_active"`
	SubscriptionType   string     `json:"subscription_type"`
	SubscriptionUntil  *time.Time `json:"subscription_until"`
}

// NewProfileView строит публичную проекцию из доменной модели.
func NewProfileView(u *models.User) ProfileView {
	return ProfileView{
		FullName:           u.FullName,
		BirthDate:          u.BirthDate,
		PhotoURL:           u.PhotoPath,
		LastLogin:          u.LastLogin,
		SubscriptionActive: u.SubscriptionActive,
		SubscriptionType:   u.SubscriptionType,
		SubscriptionUntil:  u.SubscriptionUntil,
	}
}

// LoginView — проекция пользователя в ответе на авторизацию.
// Идентификатор телеграм-чата и ссылка на фото в ответ не входят.
type LoginView struct {
	ID                 int64      `json:"id"`
	FullName           string     `json:"full_name"`
	BirthDate          string     `json:"birth_date"`
	Login              string     `json:"login"`
	SubscriptionActive bool       `json:"subscription_active"`
	SubscriptionType   string     `json:"subscription_type"`
	LastLogin          *time.Time `json:"last_login"`
	RegisteredAt       time.Time  `json:"registered_at"`
}

// NewLoginView строит проекцию для ответа на авторизацию.
func NewLoginView(u *models.User) LoginView {
	return LoginView{
		ID:                 u.ID,
		FullName:           u.FullName,
		BirthDate:          u.BirthDate,
		Login:              u.Login,
		SubscriptionActive: u.SubscriptionActive,
		SubscriptionType:   u.SubscriptionType,
		LastLogin:          u.LastLogin,
		RegisteredAt:       u.RegisteredAt,
	}
}

// UserView — полная проекция пользователя для админских ответов,
// без хэша пароля.
type UserView struct {
	ID                 int64      `json:"id"`
	TelegramID         int64      `json:"telegram_id"`
	Username           *string    `json:"username"`
	FullName           string     `json:"full_name"`
	BirthDate          string     `json:"birth_date"`
	PhotoURL           *string    `json:"photo_url"`
	Login              string     `json:"login"`
	SubscriptionActive bool       `json:"subscription_active"`
	SubscriptionType   string     `json:"subscription_type"`
	SubscriptionUntil  *time.Time `json:"subscription_until"`
	LastLogin          *time.Time `json:"last_login"`
	RegisteredAt       time.Time  `json:"registered_at"`
}

// NewUserView строит проекцию из доменной модели.
func NewUserView(u *models.User) UserView {
	return UserView{
		ID:                 u.ID,
		TelegramID:         u.TelegramID,
		Username:           u.Username,
		FullName:           u.FullName,
		BirthDate:          u.BirthDate,
		PhotoURL:           u.PhotoPath,
		Login:              u.Login,
		SubscriptionActive: u.SubscriptionActive,
		SubscriptionType:   u.SubscriptionType,
		SubscriptionUntil:  u.SubscriptionUntil,
		LastLogin:          u.LastLogin,
		RegisteredAt:       u.RegisteredAt,
	}
}

// NewUserViews строит проекции для списка пользователей.
func NewUserViews(users []*models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}
