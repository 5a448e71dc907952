package storage

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations uses its own connection so the migrate instance can be closed
// without touching the storage pool.
func runMigrations(driverName, dsn string) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return errors.Wrap(err, "open migration database")
	}

	var driver database.Driver
	switch driverName {
	case postgresDriver:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case sqliteDriver:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		err = errors.Errorf("no migration driver for %s", driverName)
	}
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "create migration driver")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return errors.Wrap(err, "create iofs source")
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		_ = driver.Close()
		return errors.Wrap(err, "create migrate instance")
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}
