// Package migrations applies the embedded SQL schema with golang-migrate.
package migrations

import (
	"context"
	"embed"
	"log/slog"

	"guardianmed/config"
	"guardianmed/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// Run applies migrations in direction against dsn. Already being at the target
// version is not an error.
func Run(dsn, direction string) error {
	if dsn == "" {
		return errors.New("migrate.databaseUrl is not set")
	}
	if direction != DirectionUp && direction != DirectionDown {
		return errors.Errorf("direction must be up or down, got %q", direction)
	}

	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case DirectionUp:
		err = m.Up()
	case DirectionDown:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "migrate %s", direction)
	}

	return nil
}

// Version reports the current schema version and whether it is dirty.
func Version(dsn string) (uint, bool, error) {
	m, err := newMigrator(dsn)
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "read migration version")
	}

	return version, dirty, nil
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFS, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "migrate source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "migrate init")
	}

	return m, nil
}

// AutoMigrateParams holds dependencies for AutoMigrate, injected by Fx.
type AutoMigrateParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// AutoMigrate applies pending migrations on start when migrate.autoMigrate is set.
func AutoMigrate(params AutoMigrateParams) {
	cfg := params.Config.Migrate
	if cfg == nil || !cfg.AutoMigrate {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			params.Logger.Info("Applying database migrations")
			if err := Run(cfg.DatabaseURL, DirectionUp); err != nil {
				return err
			}

			version, dirty, err := Version(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			params.Logger.Info("Database schema ready", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

			return nil
		},
	})
}
