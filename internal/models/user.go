// Package models содержит доменную модель пользователя цифрового удостоверения:
// учётные данные, профиль, ссылку на фото и состояние подписки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID                 int64      // Числовой идентификатор (генерируется базой)
	TelegramID         int64      // Идентификатор Telegram-чата (уникальный)
	Username           *string    // Username в Telegram, может отсутствовать
	FullName           string     // Полное имя
	BirthDate          string     // Дата рождения (строка, как ввёл пользователь)
	PhotoPath          *string    // URL фото на внешнем хостинге, nil если нет
	Login              string     // Логин (уникальный, выбирается пользователем)
	PasswordHash       string     // bcrypt-хэш пароля
	SubscriptionActive bool       // Флаг активной подписки
	SubscriptionType   string     // Тариф подписки, по умолчанию "безкоштовна"
	SubscriptionUntil  *time.Time // Дата окончания подписки, nil — бессрочно
	LastLogin          *time.Time // Время последнего входа
	RegisteredAt       time.Time
	UpdatedAt          time.Time
}

// CreateUserParams — входные данные для создания пользователя.
// Пароль передаётся открытым текстом и хэшируется хранилищем.
type CreateUserParams struct {
	TelegramID int64
	Username   *string
	FullName   string
	BirthDate  string
	PhotoPath  *string
	Login      string
	Password   string
}
