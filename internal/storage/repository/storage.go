// Package repository реализует реляционное хранилище пользователей,
// состояний регистрации и платежей. Поддерживаются два движка: PostgreSQL
// (продакшен) и SQLite (локальная разработка). Движок выбирается один раз
// при старте процесса по строке подключения, все операции — одиночные
// SQL-выражения через database/sql.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite "modernc.org/sqlite"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Engine — движок базы данных, выбранный при старте.
type Engine string

// Поддерживаемые движки.
const (
	EnginePostgres Engine = "postgres"
	EngineSQLite   Engine = "sqlite"
)

// Ошибки хранилища. Обработчики HTTP переводят их в статусы на границе,
// внутри слоёв они передаются как есть.
var (
	// ErrNotFound — запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrConflict — нарушение уникальности при создании (login или telegram_id).
	ErrConflict = errors.New("already exists")
)

// Storage инкапсулирует пул соединений и реализует операции
// над таблицами users, registration_temp и payments.
type Storage struct {
	DB     *sql.DB
	Engine Engine
}

// New открывает подключение по строке вида postgres://... либо пути к файлу
// SQLite (допускается префикс sqlite://). Пул PostgreSQL ограничен десятью
// соединениями, SQLite пишет в один поток.
func New(databaseURL string) (*Storage, error) {
	const op = "storage.New"

	engine, driver, dsn := EngineSQLite, "sqlite", strings.TrimPrefix(databaseURL, "sqlite://")
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		engine, driver, dsn = EnginePostgres, "pgx", databaseURL
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if engine == EnginePostgres {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB:     db,
		Engine: engine,
	}, nil
}

// Close закрывает пул соединений. Вызывается только при остановке процесса.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// isUniqueViolation распознаёт нарушение уникального ограничения
// для обоих движков.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// SQLITE_CONSTRAINT_PRIMARYKEY и SQLITE_CONSTRAINT_UNIQUE
		return liteErr.Code() == 1555 || liteErr.Code() == 2067
	}
	return false
}
