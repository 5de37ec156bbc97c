package models

import "time"

// RegistrationState — эфемерное состояние анкеты регистрации, одна запись
// на telegram_id. Payload накапливает ответы пользователя по шагам и при
// каждом сохранении перезаписывается целиком (replace, не merge).
type RegistrationState struct {
	TelegramID int64
	Step       string            // Имя текущего шага, интерпретируется только ботом
	Payload    map[string]string // Накопленные данные анкеты
	CreatedAt  time.Time
}
