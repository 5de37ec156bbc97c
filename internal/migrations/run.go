// Package migrations применяет SQL-миграции из каталога, соответствующего
// выбранному движку базы данных.
package migrations

import (
	"database/sql"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет миграции из path к базе db. engine — "postgres" или "sqlite".
func Run(db *sql.DB, engine string, path string) error {
	var (
		driver database.Driver
		err    error
	)
	switch engine {
	case "postgres":
		driver, err = pgxv5.WithInstance(db, &pgxv5.Config{})
	default:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, engine, driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}
