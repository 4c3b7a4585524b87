package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"creativesync/db/migrations"
)

// ErrDirty is returned when a previous migration failed half-way.
var ErrDirty = errors.New("database is in dirty state")

// Migrate brings the kv_store schema up to migrations.Version.
func Migrate(addr string) error {
	return withMigrator(addr, func(mg *migrate.Migrate) error {
		return mg.Migrate(migrations.Version)
	})
}

// Rollback reverts every applied migration.
func Rollback(addr string) error {
	return withMigrator(addr, func(mg *migrate.Migrate) error {
		return mg.Down()
	})
}

func withMigrator(addr string, step func(*migrate.Migrate) error) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return fmt.Errorf("connect migrate: %w", err)
	}
	defer mg.Close()

	if _, dirty, verr := mg.Version(); verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", verr)
	} else if dirty {
		return ErrDirty
	}

	if err = step(mg); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
