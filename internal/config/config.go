// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" env-required:"true"`
	Migrations  string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	Bot         `yaml:"bot"`
	Cloudinary  `yaml:"cloudinary"`
	HTTPServer  `yaml:"http_server"`
	JWTToken    `yaml:"jwttoken"`
}

// Bot структура для настройки телеграм-бота.
// WebhookURL — публичный адрес сервиса; если пуст, бот получает
// обновления long-polling'ом вместо вебхука.
type Bot struct {
	Token       string `yaml:"token" env:"BOT_TOKEN" env-required:"true"`
	WebhookPath string `yaml:"webhook_path" env:"BOT_WEBHOOK_PATH" env-default:"/webhook"`
	WebhookURL  string `yaml:"webhook_url" env:"BOT_WEBHOOK_URL"`
}

// Cloudinary структура для настройки хостинга фотографий
type Cloudinary struct {
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME" env-required:"true"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY" env-required:"true"`
	APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET" env-required:"true"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH,
// или целиком из переменных окружения, если CONFIG_PATH не задан.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}
