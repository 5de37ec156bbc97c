// Package diia собирает приложение целиком: хранилище, миграции,
// телеграм-бота, хостинг фотографий и HTTP-сервер.
package diia

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/diiateam/diia-backend/internal/bot"
	"github.com/diiateam/diia-backend/internal/cloudinary"
	"github.com/diiateam/diia-backend/internal/config"
	"github.com/diiateam/diia-backend/internal/lib/jwt"
	"github.com/diiateam/diia-backend/internal/migrations"
	authservice "github.com/diiateam/diia-backend/internal/services/auth"
	paymentservice "github.com/diiateam/diia-backend/internal/services/payment"
	registrationservice "github.com/diiateam/diia-backend/internal/services/registration"
	subscriptionservice "github.com/diiateam/diia-backend/internal/services/subscription"
	userservice "github.com/diiateam/diia-backend/internal/services/user"
	"github.com/diiateam/diia-backend/internal/storage/repository"
)

// App держит HTTP-сервер и ресурсы с временем жизни процесса.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	bot     *bot.Bot
	polling bool
}

// New инициализирует приложение по конфигу.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, string(db.Engine),
		filepath.Join(cfg.Migrations, string(db.Engine))); err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("engine", string(db.Engine)))

	photos := cloudinary.New(cfg.CloudName, cfg.APIKey, cfg.APISecret, logger)
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker, logger)
	userService := userservice.New(db)
	subscriptionService := subscriptionservice.New(db)
	paymentService := paymentservice.New(db, logger)
	registrationService := registrationservice.New(db, photos, logger)

	tgBot, err := bot.New(cfg.Token, registrationService, logger)
	if err != nil {
		return nil, err
	}

	// С публичным URL обновления приходят вебхуком, иначе long-polling'ом
	polling := cfg.WebhookURL == ""
	if !polling {
		webhookURL := strings.TrimSuffix(cfg.WebhookURL, "/") + cfg.WebhookPath
		if err := tgBot.RegisterWebhook(webhookURL); err != nil {
			return nil, err
		}
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		User:         userService,
		Subscription: subscriptionService,
		Payment:      paymentService,
		Bot:          tgBot,
		WebhookPath:  cfg.WebhookPath,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		db:      db,
		bot:     tgBot,
		polling: polling,
	}, nil
}

// Run запускает HTTP-сервер и, в режиме без вебхука, long-polling бота.
// Останавливает все при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	if a.polling {
		go a.bot.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
