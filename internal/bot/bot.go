// Package bot реализует телеграм-бота пошаговой регистрации пользователей.
//
// Диалог ведет пользователя по шагам: имя, дата рождения, фото, логин,
// пароль. Состояние между шагами хранится в базе через сервис регистрации,
// поэтому диалог переживает перезапуск процесса.
package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/diiateam/diia-backend/internal/lib/sl"
	"github.com/diiateam/diia-backend/internal/services/registration"
)

// Ответы бота пользователю.
const (
	msgWelcome           = "Вітаємо! Розпочнемо реєстрацію.\nВведіть ваше повне ім'я:"
	msgAlreadyRegistered = "Ви вже зареєстровані. Увійдіть у додаток за своїм логіном."
	msgCancelled         = "Реєстрацію скасовано. Надішліть /start, щоб розпочати знову."
	msgAskBirthDate      = "Введіть дату народження у форматі ДД.ММ.РРРР:"
	msgBadBirthDate      = "Невірний формат дати. Введіть у форматі ДД.ММ.РРРР:"
	msgAskPhoto          = "Надішліть ваше фото:"
	msgNeedPhoto         = "Будь ласка, надішліть саме фото."
	msgAskLogin          = "Придумайте логін (щонайменше 3 символи):"
	msgShortLogin        = "Логін закороткий. Введіть щонайменше 3 символи:"
	msgLoginTaken        = "Цей логін вже зайнятий. Виберіть інший:"
	msgAskPassword       = "Придумайте пароль (щонайменше 6 символів):"
	msgShortPassword     = "Пароль має містити щонайменше 6 символів. Спробуйте ще раз:"
	msgDone              = "Реєстрацію завершено! Тепер ви можете увійти в додаток."
	msgInternalError     = "Сталася помилка. Спробуйте ще раз пізніше."
	msgPressStart        = "Надішліть /start, щоб розпочати реєстрацію."
)

const birthDateLayout = "02.01.2006"

// RegistrationService описывает интерфейс сервиса регистрации.
type RegistrationService interface {
	SaveStep(ctx context.Context, telegramID int64, step string, payload map[string]string) error
	State(ctx context.Context, telegramID int64) (string, map[string]string, error)
	Cancel(ctx context.Context, telegramID int64) error
	IsRegistered(ctx context.Context, telegramID int64) (bool, error)
	LoginTaken(ctx context.Context, login string) (bool, error)
	Complete(ctx context.Context, telegramID int64, username *string, payload map[string]string) (int64, error)
}

// api — подмножество методов tgbotapi.BotAPI, используемое ботом.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot обрабатывает обновления Telegram и ведет диалог регистрации.
type Bot struct {
	api        api
	service    RegistrationService
	log        *slog.Logger
	httpClient *http.Client
	photoDir   string
}

// New создает бота и авторизуется в Telegram Bot API.
func New(token string, service RegistrationService, log *slog.Logger) (*Bot, error) {
	const op = "bot.New"

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("telegram bot authorized", slog.String("username", botAPI.Self.UserName))

	return newBot(botAPI, service, log), nil
}

func newBot(botAPI api, service RegistrationService, log *slog.Logger) *Bot {
	return &Bot{
		api:        botAPI,
		service:    service,
		log:        log,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		photoDir:   os.TempDir(),
	}
}

// HandleUpdate обрабатывает одно обновление Telegram.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	telegramID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, telegramID)
		return
	case "cancel":
		b.handleCancel(ctx, telegramID)
		return
	}

	step, payload, err := b.service.State(ctx, telegramID)
	if err != nil {
		b.log.Error("failed to load registration state", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}

	switch step {
	case registration.StepName:
		b.handleName(ctx, telegramID, msg, payload)
	case registration.StepBirthDate:
		b.handleBirthDate(ctx, telegramID, msg, payload)
	case registration.StepPhoto:
		b.handlePhoto(ctx, telegramID, msg, payload)
	case registration.StepLogin:
		b.handleLogin(ctx, telegramID, msg, payload)
	case registration.StepPassword:
		b.handlePassword(ctx, telegramID, msg, payload)
	default:
		b.reply(telegramID, msgPressStart)
	}
}

func (b *Bot) handleStart(ctx context.Context, telegramID int64) {
	registered, err := b.service.IsRegistered(ctx, telegramID)
	if err != nil {
		b.log.Error("failed to check registration", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	if registered {
		b.reply(telegramID, msgAlreadyRegistered)
		return
	}

	if err := b.service.SaveStep(ctx, telegramID, registration.StepName, map[string]string{}); err != nil {
		b.log.Error("failed to start registration", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	b.reply(telegramID, msgWelcome)
}

func (b *Bot) handleCancel(ctx context.Context, telegramID int64) {
	if err := b.service.Cancel(ctx, telegramID); err != nil {
		b.log.Error("failed to cancel registration", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	b.reply(telegramID, msgCancelled)
}

func (b *Bot) handleName(ctx context.Context, telegramID int64, msg *tgbotapi.Message, payload map[string]string) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		b.reply(telegramID, msgWelcome)
		return
	}

	payload[registration.KeyFullName] = name
	b.advance(ctx, telegramID, registration.StepBirthDate, payload, msgAskBirthDate)
}

func (b *Bot) handleBirthDate(ctx context.Context, telegramID int64, msg *tgbotapi.Message, payload map[string]string) {
	text := strings.TrimSpace(msg.Text)
	if _, err := time.Parse(birthDateLayout, text); err != nil {
		b.reply(telegramID, msgBadBirthDate)
		return
	}

	payload[registration.KeyBirthDate] = text
	b.advance(ctx, telegramID, registration.StepPhoto, payload, msgAskPhoto)
}

func (b *Bot) handlePhoto(ctx context.Context, telegramID int64, msg *tgbotapi.Message, payload map[string]string) {
	if len(msg.Photo) == 0 {
		b.reply(telegramID, msgNeedPhoto)
		return
	}

	// Последний элемент - версия наибольшего разрешения
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	path, err := b.downloadPhoto(ctx, telegramID, fileID)
	if err != nil {
		b.log.Error("failed to download photo", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}

	payload[registration.KeyPhotoFile] = path
	b.advance(ctx, telegramID, registration.StepLogin, payload, msgAskLogin)
}

func (b *Bot) handleLogin(ctx context.Context, telegramID int64, msg *tgbotapi.Message, payload map[string]string) {
	login := strings.TrimSpace(msg.Text)
	if len([]rune(login)) < 3 {
		b.reply(telegramID, msgShortLogin)
		return
	}

	taken, err := b.service.LoginTaken(ctx, login)
	if err != nil {
		b.log.Error("failed to check login", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	if taken {
		b.reply(telegramID, msgLoginTaken)
		return
	}

	payload[registration.KeyLogin] = login
	b.advance(ctx, telegramID, registration.StepPassword, payload, msgAskPassword)
}

func (b *Bot) handlePassword(ctx context.Context, telegramID int64, msg *tgbotapi.Message, payload map[string]string) {
	passwordText := msg.Text
	if len([]rune(passwordText)) < 6 {
		b.reply(telegramID, msgShortPassword)
		return
	}

	payload[registration.KeyPassword] = passwordText

	var username *string
	if msg.From.UserName != "" {
		username = &msg.From.UserName
	}

	if _, err := b.service.Complete(ctx, telegramID, username, payload); err != nil {
		b.log.Error("failed to complete registration", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	b.reply(telegramID, msgDone)
}

// advance сохраняет следующий шаг и задает пользователю следующий вопрос.
func (b *Bot) advance(ctx context.Context, telegramID int64, step string, payload map[string]string, question string) {
	if err := b.service.SaveStep(ctx, telegramID, step, payload); err != nil {
		b.log.Error("failed to save registration step", sl.Err(err))
		b.reply(telegramID, msgInternalError)
		return
	}
	b.reply(telegramID, question)
}

func (b *Bot) reply(telegramID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(telegramID, text)); err != nil {
		b.log.Error("failed to send message", slog.Int64("telegram_id", telegramID), sl.Err(err))
	}
}

// downloadPhoto скачивает файл из Telegram во временную директорию
// и возвращает путь к нему.
func (b *Bot) downloadPhoto(ctx context.Context, telegramID int64, fileID string) (string, error) {
	const op = "bot.downloadPhoto"

	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	path := filepath.Join(b.photoDir, fmt.Sprintf("diia_photo_%d.jpg", telegramID))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}
