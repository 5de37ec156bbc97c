// Package diia предоставляет маршруты для основного приложения.
package diia

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/diiateam/diia-backend/internal/bot"
	"github.com/diiateam/diia-backend/internal/http/handlers/admin/grantsub"
	"github.com/diiateam/diia-backend/internal/http/handlers/admin/listusers"
	"github.com/diiateam/diia-backend/internal/http/handlers/admin/paymentcomplete"
	"github.com/diiateam/diia-backend/internal/http/handlers/admin/paymentcreate"
	"github.com/diiateam/diia-backend/internal/http/handlers/admin/updatesub"
	"github.com/diiateam/diia-backend/internal/http/handlers/auth/login"
	"github.com/diiateam/diia-backend/internal/http/handlers/health"
	photoget "github.com/diiateam/diia-backend/internal/http/handlers/photo/get"
	userget "github.com/diiateam/diia-backend/internal/http/handlers/user/get"
	"github.com/diiateam/diia-backend/internal/http/middlewarectx"
	authservice "github.com/diiateam/diia-backend/internal/services/auth"
	paymentservice "github.com/diiateam/diia-backend/internal/services/payment"
	subscriptionservice "github.com/diiateam/diia-backend/internal/services/subscription"
	userservice "github.com/diiateam/diia-backend/internal/services/user"
)

// Services собирает зависимости маршрутов.
type Services struct {
	Auth         *authservice.Service
	User         *userservice.Service
	Subscription *subscriptionservice.Service
	Payment      *paymentservice.Service
	Bot          *bot.Bot
	WebhookPath  string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/user/{login}", userget.New(logger, s.User).ServeHTTP)
		r.Get("/photo/{user_id}", photoget.New(logger, s.User).ServeHTTP)
		r.Get("/health", health.Status)

		// TODO: закрыть админские маршруты аутентификацией
		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", listusers.New(logger, s.User).ServeHTTP)
			r.Post("/grant-subscription", grantsub.New(logger, s.Subscription).ServeHTTP)
			r.Post("/update-subscription", updatesub.New(logger, s.Subscription).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Post("/payments/complete", paymentcomplete.New(logger, s.Payment).ServeHTTP)
		})
	})

	r.Post(s.WebhookPath, s.Bot.Webhook())
	r.Get("/keep-alive", health.KeepAlive)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
