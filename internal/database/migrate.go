package database

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationLogger lets golang-migrate report through zap.
type migrationLogger struct {
	log *zap.SugaredLogger
}

func (l migrationLogger) Verbose() bool { return false }

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

// Migrate applies every pending migration for the configured driver. The
// migrations are embedded in the binary, one directory per dialect.
func Migrate(cfg Config, log *zap.Logger) error {
	if cfg.Driver == "" {
		cfg.Driver = DriverMySQL
	}
	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("open migrations for %s: %w", cfg.Driver, err)
	}

	var url string
	switch cfg.Driver {
	case DriverMySQL:
		url = "mysql://" + cfg.DSN()
	case DriverSQLite:
		url = "sqlite3://" + cfg.Path
	default:
		return fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()
	m.Log = migrationLogger{log: log.Sugar()}

	start := time.Now()
	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("no new migrations to apply")
		return nil
	case err != nil:
		version, dirty, _ := m.Version()
		log.Error("failed to apply migrations",
			zap.Error(err), zap.Uint("version", version), zap.Bool("dirty", dirty))
		return err
	}

	version, _, _ := m.Version()
	log.Info("database migrations applied",
		zap.Uint("version", version), zap.Duration("elapsed", time.Since(start)))
	return nil
}
